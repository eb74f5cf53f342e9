package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rectfree/rectfree/pkg/cache"
	"github.com/rectfree/rectfree/pkg/grid"
	"github.com/rectfree/rectfree/pkg/gridio"
	"github.com/rectfree/rectfree/pkg/observability"
	"github.com/rectfree/rectfree/pkg/repair"
	"github.com/rectfree/rectfree/pkg/scan"
	"github.com/rectfree/rectfree/pkg/search"
)

// searchFlags holds the flags shared by the search and watch commands.
type searchFlags struct {
	colors   int
	maxIters int
	seed     uint64
	strategy string
	config   string
	noCache  bool
}

// registerSearchFlags wires the shared search flags onto a command.
func registerSearchFlags(cmd *cobra.Command, f *searchFlags) {
	cmd.Flags().IntVarP(&f.colors, "colors", "k", search.DefaultColors, "palette size K")
	cmd.Flags().IntVar(&f.maxIters, "max-iters", 0, "iteration cap (default 1000*max(M,N)^2)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for a reproducible run (0 = time-based)")
	cmd.Flags().StringVar(&f.strategy, "strategy", repair.DefaultName,
		fmt.Sprintf("repair strategy: %v", repair.Names()))
	cmd.Flags().StringVar(&f.config, "config", "", "TOML file with search defaults")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "skip the solution cache")
}

// buildOptions turns a shape argument plus flags and config into search
// options. Validation happens in search.New.
func buildOptions(cmd *cobra.Command, shapeArg string, f *searchFlags) (search.Options, error) {
	rows, cols, err := parseShape(shapeArg)
	if err != nil {
		return search.Options{}, err
	}

	opts := search.Options{
		Rows:          rows,
		Cols:          cols,
		Colors:        f.colors,
		MaxIterations: f.maxIters,
		Seed:          f.seed,
		Strategy:      f.strategy,
		Logger:        loggerFromContext(cmd.Context()),
	}

	cfg, err := loadConfig(f.config)
	if err != nil {
		return search.Options{}, err
	}
	applyConfig(&opts, cfg, cmd.Flags())
	return opts, nil
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		flags  searchFlags
		output string
		report string
		frames string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "search [N | MxN]",
		Short: "Search for a rectangle-free grid coloring",
		Long: `Search for a coloring of an MxN grid with K colors such that no
axis-aligned rectangle has all four corners the same color.

The search starts from a uniformly random grid and repeatedly scans for
violating rectangles, recoloring one random corner of each. It stops
when a scan finds no violations (converged) or when the iteration cap
runs out (exhausted). Convergence is heuristic: grids beyond roughly
11x11 with four colors rarely converge.

Shapes that already converged once are answered from a local solution
cache; use --no-cache to force a fresh search.

Examples:
  rectfree search 11 --seed 7
  rectfree search 8x10 --colors 3 --frames run.jsonl
  rectfree search 12 --strategy snapshot --max-iters 500000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			return c.runSearch(cmd.Context(), opts, searchOutputs{
				gridPath:   output,
				reportPath: report,
				framesPath: frames,
				noCache:    flags.noCache,
				quiet:      quiet,
			})
		},
	}

	registerSearchFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the final grid as JSON")
	cmd.Flags().StringVar(&report, "report", "", "write the full run report as JSON")
	cmd.Flags().StringVar(&frames, "frames", "", "record every iteration as JSONL frames")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	return cmd
}

// searchOutputs bundles the search command's output options.
type searchOutputs struct {
	gridPath   string
	reportPath string
	framesPath string
	noCache    bool
	quiet      bool
}

// runSearch consults the cache, runs the loop on a miss, and writes the
// requested outputs.
func (c *CLI) runSearch(ctx context.Context, opts search.Options, out searchOutputs) error {
	logger := loggerFromContext(ctx)
	store := newCache(out.noCache)
	defer store.Close()
	keyer := cache.NewDefaultKeyer()

	// A validated copy fixes Colors before the cache key is computed.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	key := keyer.SolutionKey(opts.Rows, opts.Cols, opts.Colors)
	if g, ok := c.cachedSolution(ctx, store, key); ok {
		printSuccess("Rectangle-free %dx%d grid with %d colors (cached)",
			opts.Rows, opts.Cols, opts.Colors)
		printGrid(g.Snapshot(), nil)
		if out.gridPath != "" {
			if err := gridio.ExportGrid(g, out.gridPath); err != nil {
				return err
			}
			printFile(out.gridPath)
		}
		return nil
	}

	var observers []search.Observer
	if !out.quiet {
		observers = append(observers, progressPrinter{logger: logger})
	}

	var frameWriter *gridio.FrameWriter
	if out.framesPath != "" {
		f, err := os.Create(out.framesPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", out.framesPath, err)
		}
		defer f.Close()
		frameWriter = gridio.NewFrameWriter(f, "")
		observers = append(observers, frameWriter)
	}

	if len(observers) > 0 {
		opts.Observer = search.Observers(observers...)
	}

	runner, err := search.New(opts)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	if frameWriter != nil {
		if werr := frameWriter.Err(); werr != nil {
			printWarning("frame log incomplete: %v", werr)
		}
	}

	c.printResult(res, prog)

	if res.Converged() {
		if data, merr := gridio.MarshalGrid(res.Grid); merr == nil {
			if serr := store.Set(ctx, key, data, 0); serr == nil {
				observability.Cache().OnCacheSet(ctx, "solution", len(data))
			}
		}
	}

	if out.gridPath != "" {
		if err := gridio.ExportGrid(res.Grid, out.gridPath); err != nil {
			return err
		}
		printFile(out.gridPath)
	}
	if out.reportPath != "" {
		if err := gridio.ExportReport(res, out.reportPath); err != nil {
			return err
		}
		printFile(out.reportPath)
	}
	if out.framesPath != "" {
		printFile(out.framesPath)
	}
	return nil
}

// cachedSolution loads and verifies a cached rectangle-free grid.
// Entries that fail verification are evicted and treated as misses.
func (c *CLI) cachedSolution(ctx context.Context, store cache.Cache, key string) (*grid.Grid, bool) {
	data, hit, err := store.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "solution")
		return nil, false
	}

	g, err := gridio.UnmarshalGrid(data)
	if err != nil || len(scan.Detect(g)) != 0 {
		// Stale or corrupted entry.
		_ = store.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "solution")
		return nil, false
	}

	observability.Cache().OnCacheHit(ctx, "solution")
	return g, true
}

// printResult prints the run summary.
func (c *CLI) printResult(res *search.Result, prog *progress) {
	g := res.Grid
	switch {
	case res.Converged():
		prog.done(fmt.Sprintf("Converged after %d iterations", res.Iterations))
		printSuccess("Rectangle-free %dx%d grid with %d colors",
			g.Rows(), g.Cols(), g.Colors())
	default:
		prog.done(fmt.Sprintf("Exhausted after %d iterations", res.Iterations))
		printWarning("No rectangle-free coloring found within the cap")
		printDetail("%d violations remain (best seen: %d); retry with a new seed, a larger --max-iters, or a smaller grid",
			len(res.Violations), res.Best)
	}

	printKeyValue("shape", fmt.Sprintf("%dx%d", g.Rows(), g.Cols()))
	printKeyValue("colors", fmt.Sprintf("%d", g.Colors()))
	printKeyValue("seed", fmt.Sprintf("%d", res.Seed))
	printKeyValue("iterations", fmt.Sprintf("%d", res.Iterations))
	printGrid(g.Snapshot(), res.Violations)
}

// progressPrinter logs each new best violation count.
type progressPrinter struct {
	logger *log.Logger
}

// OnFrame is a no-op; frames are only interesting to recorders.
func (progressPrinter) OnFrame(search.Frame) {}

// OnProgress logs the improvement.
func (p progressPrinter) OnProgress(iteration, violations int) {
	p.logger.Info("improved", "iteration", iteration, "violations", violations)
}
