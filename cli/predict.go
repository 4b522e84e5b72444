package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	qhttp "lpapredictor/http"
	"lpapredictor/ml"
)

func newPredictCmd(configPath *string) *cobra.Command {
	var (
		cgpa      float64
		modelPath string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict LPA for a single CGPA",
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

			out := cmd.OutOrStdout()
			format := qhttp.NewFormatter()
			fmt.Fprintf(out, "Your CGPA: %s\n", format.CGPA(cgpa))

			if err := ml.ValidateCGPA(cgpa); err != nil {
				if ml.IsWarning(err) {
					fmt.Fprintf(out, "⚠️ %s\n", qhttp.WarnNonPositiveCGPA)
					return nil
				}
				return err
			}

			view := format.Prediction(ml.Predict(model, cgpa))
			fmt.Fprintf(out, "Predicted LPA: %s\n", view.LPAText)
			if !view.Positive {
				fmt.Fprintf(out, "⚠️ %s\n", view.Notice)
				return nil
			}
			fmt.Fprintf(out, "✅ %s\n", view.Summary)
			fmt.Fprintf(out, "Expected Range: %s\n", view.RangeText)
			fmt.Fprintf(out, "Based on CGPA: %s\n", view.BasedOn)
			return nil
		},
	}
	cmd.Flags().Float64Var(&cgpa, "cgpa", 7.0, "CGPA between 0.0 and 10.0")
	cmd.Flags().StringVar(&modelPath, "model", "", "model artifact path (overrides config)")
	return cmd
}
