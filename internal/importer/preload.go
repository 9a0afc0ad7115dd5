package importer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"kwmap/internal/record"
)

// Loaded holds the workbooks imported at startup. A nil batch means the
// path was empty.
type Loaded struct {
	Products *Batch[record.Product]
	Keywords *Batch[record.Keyword]
}

// Preload imports both workbooks concurrently. Empty paths are skipped.
// The first failure cancels the other import.
func (im *Importer) Preload(ctx context.Context, productsPath, keywordsPath string) (Loaded, error) {
	var out Loaded
	g, ctx := errgroup.WithContext(ctx)

	if productsPath != "" {
		g.Go(func() error {
			b, err := im.Products(ctx, productsPath)
			out.Products = b
			return err
		})
	}
	if keywordsPath != "" {
		g.Go(func() error {
			b, err := im.Keywords(ctx, keywordsPath)
			out.Keywords = b
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Loaded{}, err
	}
	return out, nil
}
