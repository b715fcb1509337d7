package root

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/mindlab/internal/domain/period"
)

func newSummaryCmd(sf *storeFlags) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print skill averages for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), sf)
			if err != nil {
				return err
			}
			svc, cleanup, err := openService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			a, err := svc.Analyze(cmd.Context(), period.Parse(token))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.Empty {
				fmt.Fprintf(out, "No data for %s.\n", a.Label)
				return nil
			}

			fmt.Fprintf(out, "%s: %d entries\n", a.Label, a.Count)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, s := range a.Skills {
				fmt.Fprintf(tw, "%s\t%.1f\n", s.Skill, s.Display)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&token, "period", "p", string(period.AllTime), "last_7_days|last_month|last_6_months|last_year|all_time")
	return cmd
}
