package cli

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/me/cpusim/pkg/model"
)

func newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List supported scheduling policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Code", "Policy", "Preemptive", "Quantum"})
			for _, p := range model.Policies {
				table.Append([]string{
					p.String(),
					p.Description(),
					strconv.FormatBool(p.Preemptive()),
					strconv.FormatBool(p.Sliced()),
				})
			}
			table.Render()
			return nil
		},
	}
}
