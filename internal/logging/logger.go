// Package logging provides config-driven categorized file logging for kwmap.
// Logs are written to .kwmap/logs/ with separate files per category.
// Logging is controlled by logging.debug_mode in .kwmap/config.yaml: when
// false, no logs are written and every category logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategoryImport  Category = "import"  // File type guard, decode, normalization
	CategoryMapping Category = "mapping" // Store operations and silent no-ops
	CategorySearch  Category = "search"  // Live query passes
	CategoryUI      Category = "ui"      // Key handling, focus, toasts
	CategoryExport  Category = "export"  // Clipboard and template output
	CategoryWatch   Category = "watch"   // File watcher reloads
)

// Categories lists every known category.
var Categories = []Category{
	CategoryBoot, CategoryImport, CategoryMapping, CategorySearch,
	CategoryUI, CategoryExport, CategoryWatch,
}

// Options mirrors config.LoggingConfig to avoid an import cycle.
type Options struct {
	DebugMode  bool
	Level      string
	JSONFormat bool
	Categories map[string]bool
}

// Logger is a category logger backed by zap. The zero value and a nil
// *Logger discard everything.
type Logger struct {
	category Category
	z        *zap.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	opts      Options
	level     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	optsMu    sync.RWMutex
)

// Initialize sets up the logs directory under ws and applies o.
// Should be called once at startup; call CloseAll before re-initializing.
func Initialize(ws string, o Options) error {
	if ws == "" {
		return fmt.Errorf("workspace path required")
	}

	optsMu.Lock()
	opts = o
	logsDir = filepath.Join(ws, ".kwmap", "logs")
	level.SetLevel(parseLevel(o.Level))
	optsMu.Unlock()

	if !o.DebugMode {
		return nil
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("logging initialized",
		zap.String("workspace", ws),
		zap.String("logs_dir", logsDir),
		zap.String("level", level.Level().String()),
		zap.Bool("json", o.JSONFormat))
	if len(o.Categories) == 0 {
		boot.Debug("all categories enabled")
	}
	for cat, enabled := range o.Categories {
		boot.Debug("category toggle", zap.String("category", cat), zap.Bool("enabled", enabled))
	}
	return nil
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsDebugMode returns whether file logging is enabled.
func IsDebugMode() bool {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled returns whether a specific category writes logs.
// Categories missing from the toggle map are enabled.
func IsCategoryEnabled(category Category) bool {
	optsMu.RLock()
	defer optsMu.RUnlock()

	if !opts.DebugMode {
		return false
	}
	enabled, exists := opts.Categories[string(category)]
	return !exists || enabled
}

// Get returns (or creates) the logger for category. It returns a no-op
// logger if debug mode or the category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return Nop(category)
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}

	optsMu.RLock()
	dir, jsonFormat := logsDir, opts.JSONFormat
	optsMu.RUnlock()
	if dir == "" {
		return Nop(category)
	}

	// Date prefix for easy rotation.
	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), category)
	logPath := filepath.Join(dir, filename)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return Nop(category)
	}

	core := zapcore.NewCore(newEncoder(jsonFormat), zapcore.AddSync(file), level)
	l := &Logger{
		category: category,
		z:        zap.New(core).With(zap.String("cat", string(category))),
		file:     file,
	}
	loggers[category] = l
	return l
}

func newEncoder(jsonFormat bool) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if jsonFormat {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// Nop returns a logger for category that discards everything.
func Nop(category Category) *Logger {
	return &Logger{category: category}
}

// FromZap wraps an existing zap logger as a category logger. Closing is
// left to the caller.
func FromZap(category Category, z *zap.Logger) *Logger {
	if z == nil {
		return Nop(category)
	}
	return &Logger{category: category, z: z.With(zap.String("cat", string(category)))}
}

// Category returns the logger's category.
func (l *Logger) Category() Category {
	if l == nil {
		return ""
	}
	return l.category
}

// Enabled reports whether the logger writes anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.z != nil
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if l.Enabled() {
		l.z.Debug(msg, fields...)
	}
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	if l.Enabled() {
		l.z.Info(msg, fields...)
	}
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	if l.Enabled() {
		l.z.Warn(msg, fields...)
	}
}

// Error logs at error level.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	if l.Enabled() {
		l.z.Error(msg, fields...)
	}
}

// With returns a child logger that adds fields to every entry. The child
// shares the parent's file.
func (l *Logger) With(fields ...zap.Field) *Logger {
	if !l.Enabled() {
		return l
	}
	return &Logger{category: l.category, z: l.z.With(fields...)}
}

// Zap exposes the underlying zap logger; a no-op logger when disabled.
func (l *Logger) Zap() *zap.Logger {
	if !l.Enabled() {
		return zap.NewNop()
	}
	return l.z
}

// CloseAll flushes and closes all open log files (call at shutdown).
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		_ = l.z.Sync()
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category.
func Boot(msg string, fields ...zap.Field) { Get(CategoryBoot).Info(msg, fields...) }

// BootDebug logs debug to the boot category.
func BootDebug(msg string, fields ...zap.Field) { Get(CategoryBoot).Debug(msg, fields...) }

// Import logs to the import category.
func Import(msg string, fields ...zap.Field) { Get(CategoryImport).Info(msg, fields...) }

// ImportDebug logs debug to the import category.
func ImportDebug(msg string, fields ...zap.Field) { Get(CategoryImport).Debug(msg, fields...) }

// Mapping logs to the mapping category.
func Mapping(msg string, fields ...zap.Field) { Get(CategoryMapping).Info(msg, fields...) }

// MappingDebug logs debug to the mapping category.
func MappingDebug(msg string, fields ...zap.Field) { Get(CategoryMapping).Debug(msg, fields...) }

// Search logs debug to the search category; passes are chatty.
func Search(msg string, fields ...zap.Field) { Get(CategorySearch).Debug(msg, fields...) }

// UI logs to the ui category.
func UI(msg string, fields ...zap.Field) { Get(CategoryUI).Info(msg, fields...) }

// UIDebug logs debug to the ui category.
func UIDebug(msg string, fields ...zap.Field) { Get(CategoryUI).Debug(msg, fields...) }

// Export logs to the export category.
func Export(msg string, fields ...zap.Field) { Get(CategoryExport).Info(msg, fields...) }

// Watch logs to the watch category.
func Watch(msg string, fields ...zap.Field) { Get(CategoryWatch).Info(msg, fields...) }
