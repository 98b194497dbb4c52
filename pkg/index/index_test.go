package index

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

type fakeEmbedder struct {
	vectors map[string][]float32
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, ok := e.vectors[text]

	if !ok {
		return nil, os.ErrNotExist
	}

	out := make([]float32, len(vec))
	copy(out, vec)
	return out, nil
}

type fakeStore struct {
	objects map[string][]byte
	gets    []string
}

func (store *fakeStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	store.gets = append(store.gets, bucket+"/"+key)
	data, ok := store.objects[key]

	if !ok {
		return nil, os.ErrNotExist
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func encodeVectors(vectors [][]float32) []byte {
	var buf bytes.Buffer

	dims := 0

	if len(vectors) > 0 {
		dims = len(vectors[0])
	}

	buf.WriteString(vectorMagic)
	_ = binary.Write(&buf, binary.LittleEndian, []uint32{vectorVersion, uint32(len(vectors)), uint32(dims)})

	for _, vec := range vectors {
		_ = binary.Write(&buf, binary.LittleEndian, vec)
	}

	return buf.Bytes()
}

func encodeDocstore(dims int, docs []Document) []byte {
	data, _ := json.Marshal(docstore{Model: "text-embedding-3-large", Dims: dims, Documents: docs})
	return data
}

func fixture() ([][]float32, []Document) {
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
		{0, 0, 1},
	}

	docs := []Document{
		{ID: "a", Content: "Mbappe joins Madrid", Metadata: Metadata{Date: "05/31/2025", Keywords: []string{"Mbappe"}}},
		{ID: "b", Content: "Ten Hag sacked", Metadata: Metadata{Date: "05/30/2025"}},
		{ID: "c", Content: "Mbappe medical done", Metadata: Metadata{Keywords: []string{"Kylian Mbappe", "Real Madrid"}}},
		{ID: "d", Content: "Unrelated", Metadata: Metadata{Date: "05/29/2025"}},
	}

	return vectors, docs
}

func writeFixture(dir string) error {
	vectors, docs := fixture()

	if err := os.WriteFile(filepath.Join(dir, DefaultVectorsName), encodeVectors(vectors), 0o644); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, DefaultMetadataName), encodeDocstore(3, docs), 0o644)
}

func testEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float32{
		"Mbappe":  {2, 0, 0},
		"Ten Hag": {0, 3, 0},
		"flat":    {1, 1},
	}}
}
