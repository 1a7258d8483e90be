package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cannon/pkg/errors"
	"github.com/matzehuels/cannon/pkg/pipeline"
	"github.com/matzehuels/cannon/pkg/plan"
)

// candidatesCommand creates the candidates command.
func (c *CLI) candidatesCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		static bool
	)

	cmd := &cobra.Command{
		Use:   "candidates [image]",
		Short: "Compare every tiling candidate for an image",
		Long: `Compare every tiling candidate for an image.

All 56 candidates are scored (the plan cache is bypassed) and shown in an
interactive table. The winner is marked with a star. Press s to change the
sort order. With --static, or when stdout is not a terminal, the table is
printed once instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Refresh = true
			return c.runCandidates(cmd.Context(), args[0], opts, flags.noCache, static || !isTerminal(os.Stdout))
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVar(&static, "static", false, "print the table instead of opening the interactive view")

	return cmd
}

func (c *CLI) runCandidates(ctx context.Context, input string, opts pipeline.Options, noCache, static bool) error {
	if err := errors.ValidateImagePath(input); err != nil {
		return err
	}
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer f.Close()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Scoring candidates...")
	opts.OnScored = scoreProgress(spinner, len(plan.Candidates()))
	spinner.Start()

	m, _, err := runner.Decode(ctx, f, opts)
	if err != nil {
		spinner.StopWithError("Decoding failed")
		return err
	}
	sel, err := runner.Plan(ctx, m, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Scoring failed")
		return err
	}
	spinner.Stop()

	title := fmt.Sprintf("Candidates for %s", filepath.Base(input))
	model := NewCandidateModel(title, sel.Scored, sel.Best.Candidate)
	if static {
		fmt.Println(StyleTitle.Render(title))
		fmt.Println(model.Static())
		return nil
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
