package index

import (
	"bytes"
	"container/heap"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/theapemachine/herewego/pkg/provider"
)

const (
	// DefaultVectorsName and DefaultMetadataName are the logical names of the two artifacts.
	DefaultVectorsName  = "index.vec"
	DefaultMetadataName = "index.json"

	vectorMagic   = "HWGV"
	vectorVersion = 1
	headerSize    = 16
)

/*
FlatIndex is an in-memory exact-search index loaded from a vector artifact
and a metadata artifact written by the same build. Vectors are normalized
on load, so a dot product is a cosine similarity.
*/
type FlatIndex struct {
	embedder  provider.Embedder
	model     string
	dims      int
	vectors   [][]float32
	documents []Document
}

type docstore struct {
	Model     string     `json:"model"`
	Dims      int        `json:"dims"`
	Documents []Document `json:"documents"`
}

/*
OpenFlat loads the artifact pair from dir. A short or foreign vector file,
unparseable metadata, or a count or dimension disagreement between the two
is an error; nothing is partially loaded.
*/
func OpenFlat(dir, vectorsName, metadataName string, embedder provider.Embedder) (*FlatIndex, error) {
	vectors, dims, err := readVectors(filepath.Join(dir, vectorsName))

	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, metadataName))

	if err != nil {
		return nil, err
	}

	var store docstore

	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("parse %s: %w", metadataName, err)
	}

	if len(store.Documents) != len(vectors) {
		return nil, fmt.Errorf(
			"artifacts disagree: %d vectors, %d documents", len(vectors), len(store.Documents),
		)
	}

	if store.Dims != 0 && store.Dims != dims {
		return nil, fmt.Errorf("artifacts disagree: %d dims in vectors, %d in metadata", dims, store.Dims)
	}

	for _, vec := range vectors {
		normalize(vec)
	}

	return &FlatIndex{
		embedder:  embedder,
		model:     store.Model,
		dims:      dims,
		vectors:   vectors,
		documents: store.Documents,
	}, nil
}

func readVectors(path string) ([][]float32, int, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, 0, err
	}

	if len(data) < headerSize || string(data[:4]) != vectorMagic {
		return nil, 0, fmt.Errorf("%s is not a vector artifact", filepath.Base(path))
	}

	var (
		version = binary.LittleEndian.Uint32(data[4:8])
		count   = int(binary.LittleEndian.Uint32(data[8:12]))
		dims    = int(binary.LittleEndian.Uint32(data[12:16]))
	)

	if version != vectorVersion {
		return nil, 0, fmt.Errorf("unsupported vector artifact version %d", version)
	}

	if !fitsPayload(count, dims, len(data)-headerSize) {
		return nil, 0, fmt.Errorf("vector artifact is %d bytes, header declares %d vectors of %d dims", len(data), count, dims)
	}

	flat := make([]float32, count*dims)

	if err := binary.Read(bytes.NewReader(data[headerSize:]), binary.LittleEndian, flat); err != nil {
		return nil, 0, err
	}

	vectors := make([][]float32, count)

	for i := range vectors {
		vectors[i] = flat[i*dims : (i+1)*dims : (i+1)*dims]
	}

	return vectors, dims, nil
}

// fitsPayload reports whether count*dims float32s fill exactly payload bytes, without multiplying first.
func fitsPayload(count, dims, payload int) bool {
	if payload%4 != 0 {
		return false
	}

	floats := payload / 4

	if count == 0 {
		return floats == 0
	}

	if dims == 0 {
		return false
	}

	return count <= floats/dims && count*dims == floats
}

func (idx *FlatIndex) Len() int {
	return len(idx.documents)
}

func (idx *FlatIndex) Model() string {
	return idx.model
}

// Search embeds query and returns the k most similar documents.
func (idx *FlatIndex) Search(ctx context.Context, query string, k int) ([]Document, error) {
	vec, err := idx.embedder.Embed(ctx, query)

	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	if len(vec) != idx.dims {
		return nil, fmt.Errorf("query has %d dims, index has %d", len(vec), idx.dims)
	}

	normalize(vec)

	results := idx.nearest(vec, k)
	docs := make([]Document, len(results))

	for i, result := range results {
		docs[i] = idx.documents[result.position]
	}

	return docs, nil
}

type scored struct {
	position int
	score    float64
}

func (idx *FlatIndex) nearest(query []float32, k int) []scored {
	if k <= 0 {
		return nil
	}

	h := &minHeap{}

	for position, vec := range idx.vectors {
		candidate := scored{position: position, score: dot(query, vec)}

		if h.Len() < k {
			heap.Push(h, candidate)
		} else if worse((*h)[0], candidate) {
			(*h)[0] = candidate
			heap.Fix(h, 0)
		}
	}

	results := make([]scored, h.Len())

	for i := len(results) - 1; i >= 0; i-- {
		results[i] = heap.Pop(h).(scored)
	}

	return results
}

// worse orders by score, then prefers the earlier document on ties.
func worse(a, b scored) bool {
	if a.score != b.score {
		return a.score < b.score
	}

	return a.position > b.position
}

// minHeap keeps the worst of the current top-k at the root.
type minHeap []scored

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(scored)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func dot(a, b []float32) float64 {
	var sum float64

	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}

	return sum
}

func normalize(vec []float32) {
	var sum float64

	for _, v := range vec {
		sum += float64(v) * float64(v)
	}

	if sum == 0 {
		return
	}

	norm := float32(math.Sqrt(sum))

	for i := range vec {
		vec[i] /= norm
	}
}
