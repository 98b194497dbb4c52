package index

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/herewego/pkg/errors"
	"github.com/theapemachine/herewego/pkg/provider"
	"github.com/theapemachine/herewego/pkg/stores/s3"
)

/*
Loader materializes a FlatIndex either from a local directory or from the
artifact pair kept in an object store bucket.
*/
type Loader struct {
	store        s3.Store
	embedder     provider.Embedder
	bucket       string
	vectorsName  string
	metadataName string
	scratch      string
}

type LoaderOption func(*Loader)

func NewLoader(store s3.Store, embedder provider.Embedder, options ...LoaderOption) *Loader {
	loader := &Loader{
		store:        store,
		embedder:     embedder,
		bucket:       "herewegopt",
		vectorsName:  DefaultVectorsName,
		metadataName: DefaultMetadataName,
	}

	for _, option := range options {
		option(loader)
	}

	return loader
}

func WithBucket(bucket string) LoaderOption {
	return func(loader *Loader) {
		if bucket != "" {
			loader.bucket = bucket
		}
	}
}

func WithArtifactNames(vectors, metadata string) LoaderOption {
	return func(loader *Loader) {
		if vectors != "" {
			loader.vectorsName = vectors
		}

		if metadata != "" {
			loader.metadataName = metadata
		}
	}
}

// WithScratch sets the parent of the temporary download directory.
func WithScratch(dir string) LoaderOption {
	return func(loader *Loader) {
		loader.scratch = dir
	}
}

/*
Load opens the index at path, or fetches both artifacts into a temporary
directory when path is empty. The temporary directory is removed before
Load returns, whatever the outcome.
*/
func (loader *Loader) Load(ctx context.Context, path string) (*FlatIndex, error) {
	if path != "" {
		idx, err := OpenFlat(path, loader.vectorsName, loader.metadataName, loader.embedder)

		if err != nil {
			return nil, errors.ErrArtifactFetch.WithMessagef("load index from %s", path).Wrap(err)
		}

		return idx, nil
	}

	if loader.store == nil {
		return nil, errors.ErrArtifactFetch.WithMessagef("no index path and no object store configured")
	}

	dir, err := os.MkdirTemp(loader.scratch, "herewego-index-*")

	if err != nil {
		return nil, errors.ErrArtifactFetch.WithMessagef("create scratch directory").Wrap(err)
	}

	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn("failed to remove scratch directory", "dir", dir, "error", err)
		}
	}()

	for _, name := range []string{loader.vectorsName, loader.metadataName} {
		if err := loader.fetch(ctx, name, filepath.Join(dir, name)); err != nil {
			return nil, errors.ErrArtifactFetch.WithMessagef("fetch s3://%s/%s", loader.bucket, name).Wrap(err)
		}
	}

	idx, err := OpenFlat(dir, loader.vectorsName, loader.metadataName, loader.embedder)

	if err != nil {
		return nil, errors.ErrArtifactFetch.WithMessagef("load fetched index").Wrap(err)
	}

	log.Info("index loaded", "bucket", loader.bucket, "documents", idx.Len(), "model", idx.Model())
	return idx, nil
}

func (loader *Loader) fetch(ctx context.Context, key, dest string) error {
	body, err := loader.store.Get(ctx, loader.bucket, key)

	if err != nil {
		return err
	}

	defer body.Close()

	fh, err := os.Create(dest)

	if err != nil {
		return err
	}

	if _, err = io.Copy(fh, body); err != nil {
		fh.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}

	return fh.Close()
}
