package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"kwmap/internal/config"
	"kwmap/internal/logging"
	"kwmap/internal/mapping"
	"kwmap/internal/record"
	"kwmap/internal/sheet"
)

var testProducts = []record.Product{
	{Key: "P-001", ID: "P-001", Type: "일반", Name: "가죽 가방", SalesStatus: "판매중", SalePrice: "39000"},
	{Key: "P-002", ID: "P-002", Type: "세트", Name: "캔버스 가방", SalesStatus: "품절", SalePrice: "19000"},
}

var testKeywords = []record.Keyword{
	{Key: "가방", Rank: 1, Keyword: "가방", Category1: "패션", SearchVolume: 1000, PrevSearchVolume: 900, GrowthRate: 11.11, ProductCount: 50, CompetitionLevel: "높음"},
	{Key: "지갑", Rank: 2, Keyword: "지갑", Category1: "패션", SearchVolume: 500, PrevSearchVolume: 600, GrowthRate: -16.67, ProductCount: 20, CompetitionLevel: "보통"},
}

func writeWorkbook(t *testing.T, name string, g sheet.Grid) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, sheet.WriteFile(path, g))
	return path
}

func observed() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return logging.FromZap(logging.CategoryImport, zap.New(core)), logs
}

func TestImporter_Products(t *testing.T) {
	path := writeWorkbook(t, "products.xlsx", record.ProductSchema().Grid(testProducts))
	log, logs := observed()

	b, err := New(nil, log).Products(context.Background(), path)
	require.NoError(t, err)

	if diff := cmp.Diff(testProducts, b.Records); diff != "" {
		t.Fatalf("products mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, KindProduct, b.Kind)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, 0, b.Duplicates)

	finished := logs.FilterMessage("import finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, b.ID, finished[0].ContextMap()["import_id"])
}

func TestImporter_Keywords(t *testing.T) {
	path := writeWorkbook(t, "keywords.xlsx", record.KeywordSchema().Grid(testKeywords))

	b, err := New(nil, nil).Keywords(context.Background(), path)
	require.NoError(t, err)
	if diff := cmp.Diff(testKeywords, b.Records); diff != "" {
		t.Fatalf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestImporter_ConfiguredLayout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Import.Keyword = config.SheetLayout{HeaderRow: 0, DataStart: 1}
	path := writeWorkbook(t, "keywords.xlsx", cfg.KeywordSchema().Grid(testKeywords[:1]))

	b, err := New(cfg, nil).Keywords(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, b.Records, 1)
	assert.Equal(t, "가방", b.Records[0].Key)
}

func TestImporter_CountsDuplicates(t *testing.T) {
	dup := append(append([]record.Product(nil), testProducts...), testProducts[0])
	path := writeWorkbook(t, "products.xlsx", record.ProductSchema().Grid(dup))
	log, logs := observed()

	b, err := New(nil, log).Products(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, b.Records, 3)
	assert.Equal(t, 1, b.Duplicates)
	assert.Equal(t, 1, logs.FilterMessage("duplicate keys kept").Len())
}

func TestImporter_RejectsNonSpreadsheet(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"products.csv", "disguised.xlsx"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("상품번호,상품명\nP-001,가방\n"), 0644))

		_, err := New(nil, nil).Products(context.Background(), path)
		var typeErr *FileTypeError
		require.ErrorAs(t, err, &typeErr, name)
		assert.Equal(t, path, typeErr.Path)
		assert.Equal(t, "only .xlsx spreadsheets can be imported", UserMessage(err))
	}
}

func TestCheckReader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sheet.Write(&buf, record.ProductSchema().Grid(testProducts)))
	assert.NoError(t, CheckReader("products.xlsx", &buf))

	err := CheckReader("upload.xlsx", strings.NewReader("상품번호,상품명\n"))
	var typeErr *FileTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "upload.xlsx", typeErr.Path)
	assert.Contains(t, typeErr.MIME, "text/")
}

func TestImporter_InvalidFile(t *testing.T) {
	g := record.KeywordSchema().Grid(testKeywords)
	g[record.KeywordDataStart][0] = sheet.String("first")
	path := writeWorkbook(t, "keywords.xlsx", g)
	log, logs := observed()

	b, err := New(nil, log).Keywords(context.Background(), path)
	assert.Nil(t, b)
	require.Error(t, err)

	var verr *record.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, record.ReasonTypeMismatch, verr.Reason)
	assert.Equal(t, "invalid file", UserMessage(err))
	assert.Equal(t, 1, logs.FilterMessage("import discarded").Len())
}

func TestImporter_MissingFile(t *testing.T) {
	_, err := New(nil, nil).Products(context.Background(), filepath.Join(t.TempDir(), "none.xlsx"))
	assert.Error(t, err)
}

func TestImporter_CanceledContext(t *testing.T) {
	path := writeWorkbook(t, "products.xlsx", record.ProductSchema().Grid(testProducts))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil, nil).Products(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreload(t *testing.T) {
	products := writeWorkbook(t, "products.xlsx", record.ProductSchema().Grid(testProducts))
	keywords := writeWorkbook(t, "keywords.xlsx", record.KeywordSchema().Grid(testKeywords))
	im := New(nil, nil)

	loaded, err := im.Preload(context.Background(), products, keywords)
	require.NoError(t, err)
	assert.Len(t, loaded.Products.Records, 2)
	assert.Len(t, loaded.Keywords.Records, 2)

	loaded, err = im.Preload(context.Background(), "", keywords)
	require.NoError(t, err)
	assert.Nil(t, loaded.Products)
	assert.NotNil(t, loaded.Keywords)

	_, err = im.Preload(context.Background(), products, filepath.Join(t.TempDir(), "none.xlsx"))
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"product": KindProduct, "Products": KindProduct, " keyword ": KindKeyword, "keywords": KindKeyword} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("orders")
	assert.Error(t, err)
}

func TestUserMessage(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	parseErr := &ParseError{Path: "a.xlsx", Err: cause}

	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "the file could not be read as a spreadsheet", UserMessage(parseErr))
	assert.ErrorIs(t, parseErr, cause)
	assert.Equal(t, "select a product first", UserMessage(fmt.Errorf("toggle: %w", mapping.ErrNoProductSelected)))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
