// Package cli implements the rectfree command-line interface.
//
// This package provides commands for running the rectangle-free search,
// watching it live in a terminal UI, rendering found grids to SVG or
// PNG, and managing the local solution cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - search: Run the stochastic search for a rectangle-free coloring
//   - watch: Run the search with a live terminal visualization
//   - render: Draw a saved grid as SVG, PNG, or DOT
//   - cache: Manage the solution cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes per-improvement progress of the search loop.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rectfree/rectfree/pkg/buildinfo"
	"github.com/rectfree/rectfree/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "rectfree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. The CLI's logger is attached to the command context and
// accessible to all commands via loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "rectfree",
		Short: "Rectfree searches for rectangle-free grid colorings",
		Long: `Rectfree is an exploratory tool that searches for colorings of an MxN grid
with K colors such that no axis-aligned rectangle has four same-colored
corners. The search is a stochastic repair loop: it scans for violating
rectangles and randomly recolors one corner of each until none remain or
an iteration cap is exhausted.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache returns the solution cache, or a null cache when caching is
// disabled or the cache directory is unavailable.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rectfree/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
