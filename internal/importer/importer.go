// Package importer loads product and keyword workbooks: file type guard,
// decode, normalization, and reload on change.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kwmap/internal/config"
	"kwmap/internal/logging"
	"kwmap/internal/record"
	"kwmap/internal/sheet"
)

// Kind names the sheet layout of an import.
type Kind string

const (
	KindProduct Kind = "product"
	KindKeyword Kind = "keyword"
)

// ParseKind accepts "product(s)" and "keyword(s)".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "product", "products":
		return KindProduct, nil
	case "keyword", "keywords":
		return KindKeyword, nil
	default:
		return "", fmt.Errorf("unknown kind %q (want product or keyword)", s)
	}
}

// Batch is the result of one successful import.
type Batch[T record.Record] struct {
	ID         string
	Kind       Kind
	Path       string
	Records    []T
	Duplicates int // records whose key repeats an earlier one
	Took       time.Duration
}

// Importer decodes workbooks with the configured sheet layouts.
type Importer struct {
	cfg *config.Config
	log *logging.Logger
}

// New creates an importer. A nil cfg uses the defaults and a nil log
// disables import logging.
func New(cfg *config.Config, log *logging.Logger) *Importer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logging.Nop(logging.CategoryImport)
	}
	return &Importer{cfg: cfg, log: log}
}

// Products imports a product workbook.
func (im *Importer) Products(ctx context.Context, path string) (*Batch[record.Product], error) {
	return load(ctx, im, KindProduct, path, im.cfg.ProductSchema())
}

// Keywords imports a keyword workbook.
func (im *Importer) Keywords(ctx context.Context, path string) (*Batch[record.Keyword], error) {
	return load(ctx, im, KindKeyword, path, im.cfg.KeywordSchema())
}

// Grid runs the type guard and decode steps only. The file is opened once
// so the checked content is the decoded content.
func (im *Importer) Grid(ctx context.Context, path string) (sheet.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := CheckReader(path, f); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", path, err)
	}
	g, err := sheet.Read(f)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return g, ctx.Err()
}

func load[T record.Record](ctx context.Context, im *Importer, kind Kind, path string, s record.Schema[T]) (*Batch[T], error) {
	start := time.Now()
	id := uuid.NewString()
	log := im.log.With(
		zap.String("import_id", id),
		zap.String("kind", string(kind)),
		zap.String("file", filepath.Base(path)))
	log.Debug("import started", zap.String("path", path))

	g, err := im.Grid(ctx, path)
	if err != nil {
		log.Warn("import rejected", zap.Error(err))
		return nil, err
	}

	records, err := record.Normalize(g, s)
	if err != nil {
		log.Warn("import discarded", zap.Error(err), zap.Int("rows", len(g)))
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	b := &Batch[T]{
		ID:         id,
		Kind:       kind,
		Path:       path,
		Records:    records,
		Duplicates: countDuplicates(records),
		Took:       time.Since(start),
	}
	if b.Duplicates > 0 {
		log.Warn("duplicate keys kept", zap.Int("duplicates", b.Duplicates))
	}
	log.Info("import finished", zap.Int("records", len(records)), zap.Duration("took", b.Took))
	return b, nil
}

func countDuplicates[T record.Record](records []T) int {
	seen := make(map[string]struct{}, len(records))
	dups := 0
	for _, r := range records {
		if _, ok := seen[r.RecordKey()]; ok {
			dups++
			continue
		}
		seen[r.RecordKey()] = struct{}{}
	}
	return dups
}
