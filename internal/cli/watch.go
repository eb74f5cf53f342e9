package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rectfree/rectfree/pkg/errors"
	"github.com/rectfree/rectfree/pkg/search"
)

// watchCommand creates the watch command: the search with a live TUI.
func (c *CLI) watchCommand() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "watch [N | MxN]",
		Short: "Run the search with a live terminal visualization",
		Long: `Run the search while watching the grid evolve in the terminal.

Cells are drawn as colored blocks; the corners of currently violating
rectangles are hatched. The display keeps up with the search on a
best-effort basis (frames are dropped, never the search itself).

Press q to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			if opts.Cols > maxInlineGridCols {
				return errors.New(errors.ErrCodeInvalidShape,
					"grid too wide for the terminal view (max %d cols); use 'rectfree search'", maxInlineGridCols)
			}
			return c.runWatch(cmd.Context(), opts)
		},
	}

	registerSearchFlags(cmd, &flags)
	return cmd
}

// runWatch runs the search in a goroutine and feeds frames to the TUI.
func (c *CLI) runWatch(ctx context.Context, opts search.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgs := make(chan tea.Msg, 64)
	opts.Observer = watchObserver{msgs: msgs}

	runner, err := search.New(opts)
	if err != nil {
		return err
	}

	go func() {
		res, runErr := runner.Run(ctx)
		// The model may already be gone if the user quit early.
		select {
		case msgs <- resultMsg{res: res, err: runErr}:
		case <-ctx.Done():
		}
	}()

	model := watchModel{msgs: msgs, seed: runner.Options().Seed}
	p := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := p.Run()
	interrupted := ctx.Err() != nil
	cancel()
	if err != nil && !interrupted {
		return err
	}

	// Repeat the outcome on the normal terminal once the TUI is gone.
	if m, ok := final.(watchModel); ok {
		if m.err != nil && !interrupted {
			printError("search failed")
			return m.err
		}
		if m.res != nil {
			prog := newProgress(loggerFromContext(ctx))
			c.printResult(m.res, prog)
		}
	}
	return nil
}

// =============================================================================
// Observer → TUI plumbing
// =============================================================================

// frameMsg carries a search frame into the TUI.
type frameMsg search.Frame

// resultMsg carries the terminal result (or run error) into the TUI.
type resultMsg struct {
	res *search.Result
	err error
}

// watchObserver forwards frames to the TUI, dropping them when the
// display falls behind. The search never blocks on rendering.
type watchObserver struct {
	msgs chan tea.Msg
}

func (o watchObserver) OnFrame(f search.Frame) {
	select {
	case o.msgs <- frameMsg(f):
	default:
	}
}

func (o watchObserver) OnProgress(int, int) {}

// =============================================================================
// Model
// =============================================================================

// watchModel is the bubbletea model for the live search view.
type watchModel struct {
	msgs  chan tea.Msg
	seed  uint64
	frame *search.Frame
	res   *search.Result
	err   error
}

func (m watchModel) Init() tea.Cmd {
	return m.listen()
}

// listen waits for the next message from the search goroutine.
func (m watchModel) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.msgs
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case frameMsg:
		f := search.Frame(msg)
		m.frame = &f
		return m, m.listen()
	case resultMsg:
		m.res = msg.res
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("rectfree"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	f := m.frame
	if f == nil {
		b.WriteString(StyleDim.Render("starting..."))
		b.WriteString("\n")
		return b.String()
	}

	status := fmt.Sprintf("iteration %s   violations %s   best %s   seed %s",
		StyleNumber.Render(fmt.Sprintf("%d", f.Iteration)),
		styleViolation.Render(fmt.Sprintf("%d", len(f.Violations))),
		StyleNumber.Render(fmt.Sprintf("%d", f.Best)),
		StyleDim.Render(fmt.Sprintf("%d", m.seed)))
	b.WriteString(status)
	b.WriteString("\n\n")
	b.WriteString(gridView(f.Grid, f.Violations))

	if m.res != nil {
		b.WriteString("\n")
		if m.res.Converged() {
			b.WriteString(StyleSuccess.Render(iconSuccess + " converged"))
		} else {
			b.WriteString(StyleWarning.Render(iconWarning + " exhausted"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
