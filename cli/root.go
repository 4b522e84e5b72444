// Package cli implements the lpapredictor command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lpapredictor/config"
	"lpapredictor/ml"
)

// Execute runs the root command and exits non-zero on failure. Model load failures have
// already been reported by loadModel.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var loadErr *ml.LoadError
		if !errors.As(err, &loadErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "lpapredictor",
		Short:         "Predict LPA from CGPA with a pre-trained linear regression",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file (empty for defaults)")

	cmd.AddCommand(
		newServeCmd(&configPath),
		newPredictCmd(&configPath),
		newModelCmd(&configPath),
	)
	return cmd
}

// loadConfig reads the config file, tolerating the default path being absent.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	return config.Load(path)
}

// loadModel loads the artifact and reports a failure the way the form page would.
func loadModel(stderr io.Writer, path string) (*ml.LinearModel, error) {
	model, err := ml.LoadModel(path)
	if err != nil {
		fmt.Fprintln(stderr, describeLoadError(err, path))
		return nil, err
	}
	return model, nil
}

func describeLoadError(err error, path string) string {
	if errors.Is(err, ml.ErrNotFound) {
		return fmt.Sprintf("❌ Model file not found! Please ensure '%s' exists.", path)
	}
	return fmt.Sprintf("❌ Error loading model: %v", err)
}
