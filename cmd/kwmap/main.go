package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kwmap/cmd/kwmap/board"
	"kwmap/internal/config"
	"kwmap/internal/logging"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Board flags
	productsPath string
	keywordsPath string
	watchFiles   bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kwmap",
	Short: "kwmap - map products to ranked keywords",
	Long: `kwmap loads a product workbook and a keyword ranking workbook (.xlsx)
and lets you build an ordered keyword list for each product.

Run without arguments to start the interactive board.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if err := logging.Initialize(workspace, cfg.Logging.Options()); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		// The board owns the terminal; its logs go to files only.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.kwmap/config.yaml)")

	rootCmd.Flags().StringVar(&productsPath, "products", "", "Product workbook to load at startup")
	rootCmd.Flags().StringVar(&keywordsPath, "keywords", "", "Keyword workbook to load at startup")
	rootCmd.Flags().BoolVar(&watchFiles, "watch", false, "Reload workbooks when they change on disk")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(templateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the workspace and reads the config file.
func loadConfig() error {
	if workspace == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve workspace: %w", err)
		}
		workspace = wd
	}
	path := configPath
	if path == "" {
		path = config.Path(workspace)
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg = c
	return nil
}

// currentConfig returns the loaded config, or the defaults when no
// command hook ran.
func currentConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// runBoard starts the interactive board
func runBoard() error {
	m := board.New(board.Options{
		Config:       currentConfig(),
		Workspace:    workspace,
		ProductsPath: productsPath,
		KeywordsPath: keywordsPath,
		Watch:        watchFiles,
	})
	defer m.Close()

	logging.Boot("board starting",
		zap.String("workspace", workspace),
		zap.String("products", productsPath),
		zap.String("keywords", keywordsPath),
		zap.Bool("watch", watchFiles))

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if fm, ok := final.(board.Model); ok {
		logging.Boot("board closed", zap.Int("entries", fm.Store().State().Len()))
	}
	return nil
}
