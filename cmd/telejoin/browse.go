package main

import (
	"fmt"

	perr "telejoin/internal/platform/errors"
	"telejoin/internal/services/pipeline/domain"
	"telejoin/internal/tui"

	"github.com/spf13/cobra"
)

func newBrowseCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse FILE",
		Short: "Browse the join of FILE interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := f.pipeline()
			if err != nil {
				return err
			}
			payload, err := readVisits(args[0])
			if err != nil {
				return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read %s", args[0])
			}
			j, err := svc.Join(commandContext(cmd), payload)
			if err != nil {
				return err
			}
			if len(j.Rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), tui.DefaultStyles().Warning.Render(domain.MsgEmptyJoin))
				return nil
			}
			return tui.Browse(j)
		},
	}
}
