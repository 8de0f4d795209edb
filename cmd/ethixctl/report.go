package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/ethix-logistics/internal/domain/report"
	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
	"github.com/yanqian/ethix-logistics/internal/infra/blobstore"
)

func newReportCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Read-only views over the persisted shipments",
	}
	cmd.AddCommand(newReportExportCmd(env), newReportDashboardCmd(env))
	return cmd
}

func newReportExportCmd(env *cliEnv) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the shipment audit CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := openReports(cmd, env)
			if err != nil {
				return err
			}
			defer cleanup()
			export, err := svc.ExportCSV(cmd.Context())
			if err != nil {
				return err
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(export.Content)
				return err
			}
			if out == "" {
				out = export.Filename
			}
			if err := os.WriteFile(out, export.Content, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", out)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; defaults to the dated report name, - for stdout")
	return cmd
}

func newReportDashboardCmd(env *cliEnv) *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print lane distribution and fleet statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := openReports(cmd, env)
			if err != nil {
				return err
			}
			defer cleanup()
			dash := svc.Dashboard(cmd.Context())
			if pretty {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), renderDashboard(dash, svc.Counterfactual(cmd.Context())))
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dash)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render a styled summary instead of JSON")
	return cmd
}

func openReports(cmd *cobra.Command, env *cliEnv) (report.Service, func(), error) {
	store, cleanup, err := blobstore.Open(cmd.Context(), env.cfg.Storage, env.logger)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open %s storage: %w", env.cfg.Storage.Backend, err)
	}
	container := storefront.NewContainer(store, env.logger)
	if err := container.Load(cmd.Context()); err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return report.NewService(container, env.logger), cleanup, nil
}
