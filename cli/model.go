package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	qhttp "lpapredictor/http"
)

func newModelCmd(configPath *string) *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "model",
		Short: "Show information about the model artifact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if modelPath == "" {
				cfg, err := loadConfig(cmd, *configPath)
				if err != nil {
					return err
				}
				modelPath = cfg.Model.Path
			}
			model, err := loadModel(cmd.ErrOrStderr(), modelPath)
			if err != nil {
				return err
			}

			view := qhttp.NewFormatter().Model(model)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Model Type: %s\n", view.Type)
			fmt.Fprintf(out, "Intercept: %s\n", view.InterceptText)
			fmt.Fprintf(out, "Coefficient: %s\n", view.CoefficientText)
			fmt.Fprintf(out, "Equation: %s\n", view.Equation)
			fmt.Fprintf(out, "Source: %s\n", view.Source)
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "model artifact path (overrides config)")
	return cmd
}
