package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/cpusim/internal/batch"
	"github.com/me/cpusim/internal/render"
	"github.com/me/cpusim/internal/scheduler"
)

// outputFlags are shared by the commands that print schedules.
type outputFlags struct {
	format  string
	metrics bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "o", "", "Output format: text, table, json, yaml (default from config)")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "Include turnaround, waiting and response metrics")
}

// write renders outcomes, falling back to the configured defaults.
func (f *outputFlags) write(w io.Writer, outcomes []batch.Outcome) error {
	name := f.format
	if name == "" {
		name = cfg.Output
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}
	return render.Write(w, format, outcomes, render.Options{Metrics: f.metrics || cfg.Metrics})
}

func newRunCmd() *cobra.Command {
	var out outputFlags
	var workers int

	cmd := &cobra.Command{
		Use:   "run [batch-file]",
		Short: "Simulate every case of a text or YAML batch",
		Long: `Reads a batch from the named file, or from stdin when no file is given.

The text format starts with the number of cases. Each case is a line
"N POLICY [QUANTUM]" followed by N lines "ARRIVAL DURATION PRIORITY".
The quantum is read only for RR. Anything that does not start with a
number is read as a YAML document with a top-level "cases" list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open batch: %w", err)
				}
				defer f.Close()
				r = f
			}

			b, err := batch.Parse(r)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("jobs") {
				workers = cfg.Workers
			}
			runner := batch.NewRunner(scheduler.NewLoop(logger), workers, logger)
			outcomes := runner.Run(cmd.Context(), b)

			if err := out.write(cmd.OutOrStdout(), outcomes); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			failed := 0
			for _, o := range outcomes {
				if o.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d cases failed", failed, len(outcomes))
			}
			return nil
		},
	}

	out.register(cmd)
	cmd.Flags().IntVarP(&workers, "jobs", "j", 0, "Cases simulated concurrently, <= 0 for unlimited (default from config)")

	return cmd
}
