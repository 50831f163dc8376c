package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/swp-projector/internal/config"
	"github.com/rpgo/swp-projector/internal/log"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>",
		Short: "Check a configuration file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				a.logger.Debug("validation failed", log.FieldFile, args[0], log.FieldError, err)
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration is valid: %d scenario(s)\n", len(cfg.Scenarios))
			for _, sc := range cfg.Scenarios {
				p := sc.Parameters
				swp := fmt.Sprintf("SWP from year %d", p.WithdrawalStartYear)
				if p.WithdrawalNeverStarts() {
					swp = "no SWP within horizon"
				}
				fmt.Fprintf(out, "  - %s: %d years, %s\n", sc.Name, p.HorizonYears, swp)
			}
			return nil
		},
	}
}
