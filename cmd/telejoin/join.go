package main

import (
	"fmt"

	"telejoin/internal/core/crossref"
	"telejoin/internal/core/dates"
	perr "telejoin/internal/platform/errors"
	pstrings "telejoin/internal/platform/strings"
	"telejoin/internal/tui"

	"github.com/spf13/cobra"
)

func newJoinCmd(f *rootFlags) *cobra.Command {
	var date, owner string
	cmd := &cobra.Command{
		Use:   "join FILE",
		Short: "Print the visits in FILE that match a telemetry date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := selectionOf(date, owner)
			if err != nil {
				return err
			}
			svc, err := f.pipeline()
			if err != nil {
				return err
			}
			payload, err := readVisits(args[0])
			if err != nil {
				return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read %s", args[0])
			}
			res, err := svc.Run(commandContext(cmd), payload, sel)
			if err != nil && !perr.IsWarning(err) {
				return err
			}
			// err is nil or the empty join warning here
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderResult(res, err, tui.DefaultStyles()))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "only rows on this date (DD/MM/YYYY)")
	cmd.Flags().StringVar(&owner, "owner", "", "only rows for this owner")
	return cmd
}

// selectionOf builds a selection from flag values; blank means all
func selectionOf(date, owner string) (crossref.Selection, error) {
	var sel crossref.Selection
	if d := pstrings.Ptr(date); d != nil {
		v, err := dates.ParseDMY(*d)
		if err != nil {
			return sel, perr.WithField(perr.InvalidArgf("--date %q is not DD/MM/YYYY", *d), "date")
		}
		sel = sel.And(crossref.ByDate(v))
	}
	if o := pstrings.NonBlank(owner); o != nil {
		sel = sel.And(crossref.ByOwner(*o))
	}
	return sel, nil
}
