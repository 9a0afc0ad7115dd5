package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kwmap/internal/config"
	"kwmap/internal/importer"
	"kwmap/internal/record"
	"kwmap/internal/sheet"
)

var testKeywords = []record.Keyword{
	{Key: "가방", Rank: 1, Keyword: "가방", SearchVolume: 1000, PrevSearchVolume: 900, GrowthRate: 11.11, CompetitionLevel: "높음"},
	{Key: "지갑", Rank: 2, Keyword: "지갑", SearchVolume: 500, PrevSearchVolume: 600, GrowthRate: -16.67, CompetitionLevel: "보통"},
}

func resetFlags(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	cfg = nil
	workspace = t.TempDir()
	configPath = ""
	inspectKind, inspectSearch, inspectLimit = "product", "", 0
	templateKind, templateOut = "product", ""
	t.Cleanup(func() { workspace = "" })
}

func TestRunTemplate(t *testing.T) {
	for _, kind := range []string{"product", "keyword"} {
		t.Run(kind, func(t *testing.T) {
			resetFlags(t)
			templateKind = kind
			templateOut = filepath.Join(t.TempDir(), "out", kind+".xlsx")

			output := captureOutput(t, func() {
				if err := runTemplate(&cobra.Command{}, nil); err != nil {
					t.Fatalf("runTemplate returned error: %v", err)
				}
			})
			if !strings.Contains(output, "Wrote "+kind+" template") {
				t.Errorf("unexpected output: %s", output)
			}

			g, err := sheet.ReadFile(templateOut)
			if err != nil {
				t.Fatalf("read template: %v", err)
			}
			header := record.ProductHeaderRow
			if kind == "keyword" {
				header = record.KeywordHeaderRow
			}
			if got := g.At(header, 0).Str; got == "" {
				t.Errorf("expected header labels at row %d", header)
			}

			// The template imports cleanly with no records.
			k, _ := importer.ParseKind(kind)
			im := importer.New(nil, nil)
			if k == importer.KindProduct {
				b, err := im.Products(context.Background(), templateOut)
				if err != nil || len(b.Records) != 0 {
					t.Errorf("template import: %v, %v", b, err)
				}
			} else {
				b, err := im.Keywords(context.Background(), templateOut)
				if err != nil || len(b.Records) != 0 {
					t.Errorf("template import: %v, %v", b, err)
				}
			}
		})
	}
}

func TestRunTemplate_BadKind(t *testing.T) {
	resetFlags(t)
	templateKind = "orders"
	if err := runTemplate(&cobra.Command{}, nil); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func writeKeywords(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keywords.xlsx")
	if err := sheet.WriteFile(path, record.KeywordSchema().Grid(testKeywords)); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return path
}

func TestRunInspect_Keywords(t *testing.T) {
	resetFlags(t)
	inspectKind = "keyword"
	path := writeKeywords(t)

	output := captureOutput(t, func() {
		if err := runInspect(&cobra.Command{}, []string{path}); err != nil {
			t.Fatalf("runInspect returned error: %v", err)
		}
	})

	for _, want := range []string{"키워드", "가방", "지갑", "1,000", "11.11%", "2 of 2 keywords"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestRunInspect_Search(t *testing.T) {
	resetFlags(t)
	inspectKind = "keyword"
	inspectSearch = "지갑"
	path := writeKeywords(t)

	output := captureOutput(t, func() {
		if err := runInspect(&cobra.Command{}, []string{path}); err != nil {
			t.Fatalf("runInspect returned error: %v", err)
		}
	})
	if !strings.Contains(output, "1 of 2 keywords") {
		t.Errorf("unexpected output:\n%s", output)
	}
	if strings.Contains(output, "가방") {
		t.Errorf("filtered record printed:\n%s", output)
	}

	inspectSearch = "없는키워드"
	output = captureOutput(t, func() {
		if err := runInspect(&cobra.Command{}, []string{path}); err != nil {
			t.Fatalf("runInspect returned error: %v", err)
		}
	})
	if !strings.Contains(output, "No matching keywords") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func TestRunInspect_Limit(t *testing.T) {
	resetFlags(t)
	inspectKind = "keyword"
	inspectLimit = 1
	path := writeKeywords(t)

	output := captureOutput(t, func() {
		if err := runInspect(&cobra.Command{}, []string{path}); err != nil {
			t.Fatalf("runInspect returned error: %v", err)
		}
	})
	if strings.Contains(output, "지갑") {
		t.Errorf("expected only the first record:\n%s", output)
	}
}

func TestRunInspect_Errors(t *testing.T) {
	resetFlags(t)

	notes := filepath.Join(t.TempDir(), "notes.xlsx")
	if err := os.WriteFile(notes, []byte("상품번호,상품명\n"), 0644); err != nil {
		t.Fatal(err)
	}
	err := runInspect(&cobra.Command{}, []string{notes})
	if err == nil || !strings.Contains(err.Error(), "only .xlsx spreadsheets") {
		t.Errorf("expected file type error, got %v", err)
	}

	// A keyword workbook does not validate as products.
	err = runInspect(&cobra.Command{}, []string{writeKeywords(t)})
	if err == nil || !strings.Contains(err.Error(), "invalid file") {
		t.Errorf("expected validation error, got %v", err)
	}

	inspectKind = "orders"
	if err := runInspect(&cobra.Command{}, []string{notes}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLoadConfig(t *testing.T) {
	resetFlags(t)
	if err := loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg == nil || cfg.UI.PageSize != config.DefaultConfig().UI.PageSize {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	bad := config.DefaultConfig()
	bad.Search.Debounce = "soon"
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	if err := bad.Save(configPath); err != nil {
		t.Fatal(err)
	}
	if err := loadConfig(); err == nil || !strings.Contains(err.Error(), "search.debounce") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	origErr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		_, _ = io.Copy(&buf, rErr)
		done <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = origOut
	os.Stderr = origErr
	return <-done
}
