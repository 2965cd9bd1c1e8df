package main

import (
	"fmt"

	"telejoin/internal/tui"

	"github.com/spf13/cobra"
)

func newTelemetryCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "telemetry",
		Short: "Summarize the configured telemetry workbooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := f.pipeline()
			if err != nil {
				return err
			}
			sum, err := svc.TelemetrySummary(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSummary(sum, tui.DefaultStyles()))
			return nil
		},
	}
}
