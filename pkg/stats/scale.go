package stats

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
)

// StandardScaler standardizes each column to zero mean and unit variance using the
// population standard deviation of the data it was fit on.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	fit  bool
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit learns per-column mean and standard deviation from the non-NaN cells. A constant
// column gets Std 1 so it transforms to all zeros. NaN cells stay NaN on Transform.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.New(errors.ErrorTypeData, "cannot fit scaler on empty matrix")
	}
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		s.Mean[j], s.Std[j] = Mean(col), Std(col)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	s.fit = true
	return nil
}

// Transform applies the fitted scaling to X and returns a new matrix.
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !s.fit {
		return nil, errors.New(errors.ErrorTypeData, "scaler is not fitted")
	}
	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, errors.Newf(errors.ErrorTypeData, "scaler fitted on %d columns, got %d", len(s.Mean), c)
	}
	Y := mat.NewDense(r, c, nil)
	Y.Apply(func(i, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Std[j]
	}, X)
	return Y, nil
}

// FitTransform fits on X and transforms it.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
