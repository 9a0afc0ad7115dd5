package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kwmap/internal/importer"
	"kwmap/internal/sheet"
)

var (
	templateKind string
	templateOut  string
)

// templateCmd writes an empty workbook
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write an empty workbook with the expected sheet layout",
	Long: `Writes an .xlsx file with the canonical header labels at the configured
header row, ready to be filled in and imported.`,
	Args: cobra.NoArgs,
	RunE: runTemplate,
}

func init() {
	templateCmd.Flags().StringVarP(&templateKind, "kind", "k", "product", "Sheet layout: product or keyword")
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "Output file (default: <kind>_template.xlsx)")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	kind, err := importer.ParseKind(templateKind)
	if err != nil {
		return err
	}
	out := templateOut
	if out == "" {
		out = fmt.Sprintf("%s_template.xlsx", kind)
	}

	c := currentConfig()
	var g sheet.Grid
	switch kind {
	case importer.KindProduct:
		g = c.ProductSchema().Grid(nil)
	default:
		g = c.KeywordSchema().Grid(nil)
	}

	if err := sheet.WriteFile(out, g); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	logger.Info("template written", zap.String("kind", string(kind)), zap.String("path", out))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s template to %s\n", kind, out)
	return nil
}
