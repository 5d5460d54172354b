package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/cpusim/internal/batch"
	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/pkg/model"
)

// parseJobFlag parses "ARRIVAL,DURATION[,PRIORITY]".
func parseJobFlag(s string) (model.JobInput, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return model.JobInput{}, fmt.Errorf("job %q: want ARRIVAL,DURATION[,PRIORITY]", s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return model.JobInput{}, fmt.Errorf("job %q: %w", s, err)
		}
		vals[i] = n
	}
	return model.JobInput{Arrival: vals[0], Duration: vals[1], Priority: vals[2]}, nil
}

func newSimulateCmd() *cobra.Command {
	var out outputFlags
	var policyName, serverURL string
	var quantum int
	var jobFlags []string

	cmd := &cobra.Command{
		Use:   "simulate --policy POLICY --job A,B[,P] [--job ...]",
		Short: "Simulate one set of jobs given on the command line",
		Example: `  cpusim simulate --policy SRTF --job 0,5 --job 1,3
  cpusim simulate --policy RR --quantum 2 --job 0,4 --job 2,2 --format table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.ScheduleRequest{Policy: policyName, Quantum: quantum}
			for _, s := range jobFlags {
				in, err := parseJobFlag(s)
				if err != nil {
					return err
				}
				req.Jobs = append(req.Jobs, in)
			}

			var res *scheduler.Result
			var err error
			if serverURL != "" {
				res, err = NewClient(serverURL, logger).CreateSchedule(req)
			} else {
				res, err = simulateLocal(req)
			}
			if err != nil {
				return err
			}

			outcome := batch.Outcome{
				Case: batch.Case{
					Name:    "1",
					Options: scheduler.Options{Policy: res.Policy, Quantum: res.Quantum},
					Jobs:    model.ToJobs(req.Jobs),
				},
				Result: res,
			}
			return out.write(cmd.OutOrStdout(), []batch.Outcome{outcome})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVarP(&policyName, "policy", "p", "", "Scheduling policy: FCFS, SJF, SRTF, P, RR")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, "Round-robin time slice (default from config)")
	cmd.Flags().StringArrayVar(&jobFlags, "job", nil, "Job as ARRIVAL,DURATION[,PRIORITY]; repeat for each job")
	cmd.Flags().StringVar(&serverURL, "server", "", "Simulate on a cpusim server instead of locally")
	cmd.MarkFlagRequired("policy")

	return cmd
}

func simulateLocal(req model.ScheduleRequest) (*scheduler.Result, error) {
	policy, err := model.ParsePolicy(req.Policy)
	if err != nil {
		return nil, err
	}
	opts := scheduler.Options{Policy: policy, Quantum: req.Quantum}
	if policy.Sliced() && opts.Quantum == 0 {
		opts.Quantum = cfg.DefaultQuantum
	}
	return scheduler.NewLoop(logger).Simulate(model.ToJobs(req.Jobs), opts)
}
