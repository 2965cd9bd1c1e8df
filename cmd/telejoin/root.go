package main

import (
	"context"
	"os"

	"telejoin/internal/core/version"
	"telejoin/internal/modkit"
	"telejoin/internal/platform/config"
	"telejoin/internal/platform/logger"
	pipemod "telejoin/internal/services/pipeline/module"
	"telejoin/internal/services/pipeline/service"

	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags every command shares
type rootFlags struct {
	telemetry []string
	schema    string
	noCache   bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:           "telejoin",
		Short:         "Join completed field visits with vehicle telemetry by date",
		Version:       version.Info().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			version.SetService("telejoin")
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringArrayVarP(&f.telemetry, "telemetry", "t", nil, "telemetry workbook, repeatable (default TELEJOIN_TELEMETRY_PATHS or DataFrame.xlsx, DataFrame2.xlsx)")
	pf.StringVar(&f.schema, "schema", "", "YAML file overriding column names")
	pf.BoolVar(&f.noCache, "no-cache", false, "disable memoization")

	cmd.AddCommand(
		newJoinCmd(&f),
		newBrowseCmd(&f),
		newTelemetryCmd(&f),
	)
	return cmd
}

// pipeline builds the pipeline service from env defaults overridden by flags
func (f *rootFlags) pipeline() (*service.Svc, error) {
	cfg := config.New()
	opts := pipemod.FromConfig(cfg)
	if len(f.telemetry) > 0 {
		opts.Sources = f.telemetry
	}
	if f.schema != "" {
		opts.SchemaFile = f.schema
	}
	if f.noCache {
		opts.Cache = false
	}
	m, err := pipemod.New(modkit.Deps{Log: logger.Named("telejoin"), Cfg: cfg}, opts)
	if err != nil {
		return nil, err
	}
	return m.Service(), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func readVisits(path string) ([]byte, error) {
	return os.ReadFile(path)
}
