package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	"github.com/yanqian/ethix-logistics/internal/infra/llm"
)

func newAdviseCmd(env *cliEnv) *cobra.Command {
	var (
		productID string
		medical   advisor.MedicalContext
	)
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Ask the advisor for the routing signals of a catalog product",
		Long: `Runs the same advisor the checkout uses. Without an API key, or when the
model misbehaves, the heuristic answers and isFallback is true.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			product, ok := catalog.FindProduct(productID)
			if !ok {
				return fmt.Errorf("unknown product %q", productID)
			}
			svc, err := buildAdvisor(cmd, env)
			if err != nil {
				return err
			}
			var mc *advisor.MedicalContext
			if medical.IntendedUse != "" || medical.RecipientType != "" || medical.Notes != "" {
				mc = &medical
			}
			res := svc.Evaluate(cmd.Context(), product.AdvisorItem(mc))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&productID, "product", "p", "", "catalog product id, e.g. p1")
	flags.StringVar(&medical.IntendedUse, "intended-use", "", "intended use of a medical product")
	flags.StringVar(&medical.RecipientType, "recipient", "", "recipient type, e.g. Hospital")
	flags.StringVar(&medical.Notes, "notes", "", "free form notes for the advisor")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func buildAdvisor(cmd *cobra.Command, env *cliEnv) (advisor.Service, error) {
	cfg := advisor.Config{
		Model:       env.cfg.LLM.Model,
		Temperature: env.cfg.LLM.Temperature,
		Prompt:      env.cfg.Advisor.Prompt,
		Timeout:     env.cfg.LLM.Timeout,
	}
	completer, err := llm.NewCompleter(cmd.Context(), env.cfg.LLM)
	if err != nil {
		return nil, err
	}
	var remote advisor.Advisor
	if completer != nil {
		remote = advisor.NewRemote(cfg, completer, env.logger)
	}
	return advisor.NewService(cfg, remote, env.logger), nil
}
