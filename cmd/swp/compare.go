package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/swp-projector/internal/config"
)

func newCompareCmd(a *app) *cobra.Command {
	o := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "compare <config>",
		Short: "Project every scenario of a configuration file side by side",
		Long: "Runs all scenarios of the file concurrently. The first two are checked " +
			"for a crossover month and every scenario is ranked for a recommendation.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			res, err := a.engine().RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return a.emit(cmd, res, *o)
		},
	}
	o.bind(cmd)
	return cmd
}
