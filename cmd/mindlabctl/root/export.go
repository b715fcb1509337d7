package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/mindlab/internal/domain/period"
)

const exportPermission = 0o644

func newExportCmd(sf *storeFlags) *cobra.Command {
	var token, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the PDF report for a period",
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

			doc, err := svc.Report(cmd.Context(), period.Parse(token))
			if err != nil {
				return err
			}

			name := out
			if name == "" {
				name = doc.FileName
			}
			if err := os.WriteFile(name, doc.Bytes, exportPermission); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", name, len(doc.Bytes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "period", "p", string(period.AllTime), "last_7_days|last_month|last_6_months|last_year|all_time")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, defaults to the report's own name")
	return cmd
}
