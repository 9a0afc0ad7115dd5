package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kwmap/cmd/kwmap/ui"
	"kwmap/internal/importer"
	"kwmap/internal/logging"
	"kwmap/internal/record"
	"kwmap/internal/search"
)

var (
	inspectKind   string
	inspectSearch string
	inspectLimit  int
)

// inspectCmd normalizes a workbook and prints it
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Normalize a workbook and print its records",
	Long: `Runs the same import as the board (file type check, decode, header
mapping, validation) and prints the records as a table. Exits non-zero on
any import error.

Example:
  kwmap inspect keywords.xlsx --kind keyword --search '가방|지갑'`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectKind, "kind", "k", "product", "Sheet layout: product or keyword")
	inspectCmd.Flags().StringVarP(&inspectSearch, "search", "s", "", "Only print records matching this term (regex)")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 0, "Print at most this many records (0 = all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	kind, err := importer.ParseKind(inspectKind)
	if err != nil {
		return err
	}
	path := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c := currentConfig()
	im := importer.New(c, logging.FromZap(logging.CategoryImport, logger))
	styles := ui.NewStyles(ui.DetectTheme(c.UI.DarkMode))

	var (
		table        *ui.SimpleTable
		shown, total int
	)
	switch kind {
	case importer.KindProduct:
		b, err := im.Products(ctx, path)
		if err != nil {
			return inspectFailed(path, err)
		}
		items := search.Filter(b.Records, inspectSearch)
		shown, total = len(items), len(b.Records)
		table = columnTable("Products", ui.ProductColumns(), limit(items))
	default:
		b, err := im.Keywords(ctx, path)
		if err != nil {
			return inspectFailed(path, err)
		}
		items := search.Filter(b.Records, inspectSearch)
		shown, total = len(items), len(b.Records)
		table = columnTable("Keywords", ui.KeywordColumns(), limit(items))
	}

	out := cmd.OutOrStdout()
	if shown == 0 {
		fmt.Fprintf(out, "No matching %ss in %s (%d total)\n", kind, filepath.Base(path), total)
		return nil
	}
	fmt.Fprint(out, table.View(styles))
	fmt.Fprintf(out, "%d of %d %ss\n", shown, total, kind)
	return nil
}

func inspectFailed(path string, err error) error {
	logger.Error("inspect failed", zap.String("path", path), zap.Error(err))
	return fmt.Errorf("%s: %s: %w", filepath.Base(path), importer.UserMessage(err), err)
}

func limit[T any](items []T) []T {
	if inspectLimit > 0 && len(items) > inspectLimit {
		return items[:inspectLimit]
	}
	return items
}

// columnTable lays records out with the board's columns.
func columnTable[T record.Record](title string, cols []ui.Column[T], items []T) *ui.SimpleTable {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title
	}
	t := ui.NewSimpleTable(title, headers)
	t.MaxWidth = 30
	for _, it := range items {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = c.Value(it)
		}
		t.AddRow(row...)
	}
	return t
}
