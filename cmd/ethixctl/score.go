package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
)

func newScoreCmd(env *cliEnv) *cobra.Command {
	var (
		signals routing.Signals
		dest    routing.Coordinate
		hubID   string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one shipment and print its lane",
		Example: `  ethixctl score --urgency 0.8 --time 0.7 --ethical 0.6 --business 0.5 --lat 9.92 --lon 78.12
  ethixctl score --business 0.9 --lat 11.0 --lon 76.9 --hub h2 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hub, ok := catalog.FindHub(hubID)
			if !ok {
				return fmt.Errorf("unknown hub %q", hubID)
			}
			decision := routing.NewEngine(env.cfg.Routing).Decide(signals, hub.Coords, dest)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(decision)
			}
			_, err := fmt.Fprintln(out, renderDecision(hub, decision))
			return err
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&signals.MedicalUrgency, "urgency", 0, "medical urgency in [0,1]")
	flags.Float64Var(&signals.TimeSensitivity, "time", 0, "time sensitivity in [0,1]")
	flags.Float64Var(&signals.EthicalRisk, "ethical", 0, "ethical risk in [0,1]")
	flags.Float64Var(&signals.BusinessRelevance, "business", 0, "business relevance in [0,1]")
	flags.Float64Var(&dest.Lat, "lat", 0, "destination latitude")
	flags.Float64Var(&dest.Lon, "lon", 0, "destination longitude")
	flags.StringVar(&hubID, "hub", catalog.DefaultHubID, "origin hub id")
	flags.BoolVar(&asJSON, "json", false, "print the decision as JSON")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}
