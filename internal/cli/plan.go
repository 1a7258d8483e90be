package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cannon/pkg/errors"
	"github.com/matzehuels/cannon/pkg/pipeline"
	"github.com/matzehuels/cannon/pkg/plan"
)

// planCommand creates the plan command, the main entry point.
func (c *CLI) planCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "plan [image]",
		Short: "Plan a barrage for an image",
		Long: `Plan a barrage for a 528x528 image.

Every pixel that differs from the background color must be struck. The plan
command evaluates all 56 tiling candidates, keeps the best one, orders its
shots for firing and writes the requested artifacts next to the image (or
into --output).

The winning candidate is cached per image, so planning the same image again
only re-scores one candidate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runPlan(cmd.Context(), args[0], output, opts, flags.noCache)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: next to the image)")

	return cmd
}

// runPlan executes the pipeline and writes the artifacts.
func (c *CLI) runPlan(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
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

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Planning barrage...")
	opts.OnScored = scoreProgress(spinner, len(plan.Candidates()))
	spinner.Start()

	result, err := runner.Execute(ctx, f, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Planning failed")
		return err
	}
	spinner.Stop()
	prog.done("Planned barrage", "shots", result.Stats.Shots, "run", result.RunID)

	printReport(result)

	paths, err := writeArtifacts(result, input, output, opts.Formats)
	if err != nil {
		return err
	}
	printNewline()
	for _, p := range paths {
		printFile(p)
	}
	if result.Selection.Scored == nil {
		printNewline()
		printNextStep("Compare all candidates", fmt.Sprintf("%s candidates %s", appName, input))
	}
	return nil
}

// scoreProgress returns a callback that counts scored candidates on the
// spinner.
func scoreProgress(s *Spinner, total int) func(plan.Summary) {
	var n atomic.Int32
	return func(plan.Summary) {
		s.SetMessage(fmt.Sprintf("Scoring candidates %d/%d...", n.Add(1), total))
	}
}

// printReport prints the metrics of the winning candidate.
func printReport(result *pipeline.Result) {
	best := result.Selection.Best
	printSuccess("Planned %s", StyleHighlight.Render(best.Candidate.String()))
	printStats(result.Stats.Shots, result.Stats.Required, result.CacheInfo.PlanHit)
	printNewline()
	printKeyValue("Orientation", best.Orientation.String())
	printKeyValue("Accuracy", fmt.Sprintf("%.2f%%", best.Accuracy))
	printKeyValue("Efficiency", fmt.Sprintf("%.2f%%", best.Efficiency))
	printKeyValue("Damaged", fmt.Sprintf("%d / %d", best.Damaged, result.Stats.Required))
	printKeyValue("Propulsion", fmt.Sprintf("%d", best.Propulsion))
	if best.Miss > 0 {
		printWarning("%d cells outside the silhouette are struck", best.Miss)
	}
}

// writeArtifacts writes one file per format and returns the paths written.
// Files are named after the input image; see artifactName.
func writeArtifacts(result *pipeline.Result, input, output string, formats []string) ([]string, error) {
	dir := output
	if dir == "" {
		dir = filepath.Dir(input)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := filepath.Join(dir, artifactName(base, format))
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactName names the file of one artifact. The diagnostic image gets a
// suffix so it never overwrites a PNG input.
func artifactName(base, format string) string {
	if format == pipeline.FormatPNG {
		base += "-diagnostic"
	}
	return base + pipeline.Extension(format)
}
