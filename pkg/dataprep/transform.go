package dataprep

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/stats"
)

// Result is the model-ready output: an all-numeric feature table and the target.
type Result struct {
	Features frame.Frame
	Target   frame.Column
}

// Dense returns the feature table as a rows x features gonum matrix.
func (r Result) Dense() (*mat.Dense, error) {
	return r.Features.Dense()
}

// Transform standardizes the numeric features (target excluded) and one-hot encodes
// the categorical ones. Scaled numerics come first, then indicators. The target is
// returned unscaled. Missing numeric cells stay NaN. Temporal columns, if any remain,
// are not features.
func Transform(f frame.Frame, target string) (Result, error) {
	schema := f.Schema()
	if err := numericTarget(schema, target); err != nil {
		return Result{}, err
	}
	targetCol, err := f.Col(target)
	if err != nil {
		return Result{}, err
	}

	numeric := schema.Select(frame.Numeric, target)
	categorical := schema.Select(frame.Categorical)

	var cols []frame.Column
	if len(numeric) > 0 {
		X, err := f.Dense(numeric...)
		if err != nil {
			return Result{}, err
		}
		scaled, err := stats.NewStandardScaler().FitTransform(X)
		if err != nil {
			return Result{}, err
		}
		for j, name := range numeric {
			cols = append(cols, frame.NewNumeric(name, mat.Col(nil, j, scaled)))
		}
	}

	indicators, err := OneHot(f, categorical, numeric)
	if err != nil {
		return Result{}, err
	}
	cols = append(cols, indicators...)

	if len(cols) == 0 {
		return Result{}, errors.New(errors.ErrorTypeData, "no feature columns besides the target")
	}
	features, err := frame.New(cols...)
	if err != nil {
		return Result{}, err
	}
	return Result{Features: features, Target: targetCol}, nil
}
