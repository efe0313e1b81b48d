package ner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/docstore"
)

// AnnotateAll tags every document of store with up to concurrency workers
// and records one result per document. A failing document gets its error
// in its result and does not stop the others. The returned error is only
// set when ctx ends the batch early; failed counts the per-document errors.
func AnnotateAll(ctx context.Context, t *Tagger, store *docstore.Store, concurrency int) (failed int, err error) {
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	m := t.Model()
	if m == nil {
		return 0, ErrModelNotLoaded
	}

	ids := store.AllIDs()
	errs := make([]error, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, ok := store.Get(id)
			if !ok {
				return nil
			}
			as, err := annotateSafely(t, m, doc.Text)
			errs[i] = err
			store.SetResult(docstore.Result{ID: id, Version: doc.Version, Annotations: as, Err: err})
			if err != nil {
				t.opts.logger.Warn("annotation failed", "document", id, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	for _, e := range errs {
		if e != nil {
			failed++
		}
	}
	t.opts.logger.Info("annotated batch", "documents", len(ids), "failed", failed)
	return failed, nil
}

// annotateSafely turns a panic while tagging one text into an error.
func annotateSafely(t *Tagger, m *Model, text string) (as []annotation.ClassifiedAnnotation, err error) {
	defer func() {
		if r := recover(); r != nil {
			as, err = nil, fmt.Errorf("ner: annotate: %v", r)
		}
	}()
	return t.annotate(m, text), nil
}
