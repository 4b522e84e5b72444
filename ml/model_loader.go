package ml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const linearRegressionType = "linear_regression"

// artifact mirrors the attributes a fitted scikit-learn LinearRegression exposes.
type artifact struct {
	ModelType    string    `json:"model_type" yaml:"model_type"`
	Intercept    *float64  `json:"intercept" yaml:"intercept"`
	Coef         []float64 `json:"coef" yaml:"coef"`
	FeatureNames []string  `json:"feature_names" yaml:"feature_names"`
	TargetName   string    `json:"target_name" yaml:"target_name"`
}

// LoadModel reads a serialized linear regression from path. The format is chosen by file
// extension (.json, .yaml, .yml). A missing file yields a LoadError of KindNotFound; every
// other failure yields KindDeserialization.
func LoadModel(path string) (*LinearModel, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(path, err)
		}
		return nil, deserialization(path, err)
	}

	var art artifact
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = decodeJSON(payload, &art)
	case ".yaml", ".yml":
		err = decodeYAML(payload, &art)
	default:
		err = fmt.Errorf("unsupported artifact format %q", ext)
	}
	if err != nil {
		return nil, deserialization(path, err)
	}

	model, err := art.toModel()
	if err != nil {
		return nil, deserialization(path, err)
	}
	model.Source = path
	return model, nil
}

func decodeJSON(payload []byte, art *artifact) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return errors.New("empty artifact")
	}
	return json.Unmarshal(payload, art)
}

func decodeYAML(payload []byte, art *artifact) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return errors.New("empty artifact")
	}
	return yaml.Unmarshal(payload, art)
}

func (a artifact) toModel() (*LinearModel, error) {
	if a.ModelType != "" && a.ModelType != linearRegressionType {
		return nil, fmt.Errorf("unsupported model type %q", a.ModelType)
	}
	if a.Intercept == nil {
		return nil, errors.New("missing intercept")
	}
	if len(a.Coef) != 1 {
		return nil, fmt.Errorf("expected exactly 1 coefficient, got %d", len(a.Coef))
	}
	slope, intercept := a.Coef[0], *a.Intercept
	if !finite(slope) || !finite(intercept) {
		return nil, errors.New("non-finite model parameter")
	}

	model := NewLinearModel(slope, intercept)
	if len(a.FeatureNames) > 1 {
		return nil, fmt.Errorf("expected at most 1 feature name, got %d", len(a.FeatureNames))
	}
	if len(a.FeatureNames) == 1 && a.FeatureNames[0] != "" {
		model.FeatureName = a.FeatureNames[0]
	}
	if a.TargetName != "" {
		model.TargetName = a.TargetName
	}
	return model, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
