package dataprep

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/stats"
)

// CollinearFeatures returns, in order, the names whose row of the absolute
// correlation matrix holds at least one off-diagonal value strictly between
// threshold and 1. NaN entries never qualify.
func CollinearFeatures(absCorr mat.Symmetric, names []string, threshold float64) []string {
	n := absCorr.SymmetricDim()
	var out []string
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			r := absCorr.At(i, j)
			if r > threshold && r < 1 {
				out = append(out, names[i])
				break
			}
		}
	}
	return out
}

// Decorrelate drops one multicollinear numeric feature. Among the collinear
// features (target excluded) it drops the one whose signed correlation with the
// target is lowest; ties keep the first in frame order. When no pair exceeds the
// threshold the frame is returned unchanged and the dropped name is empty.
func Decorrelate(f frame.Frame, target string, threshold float64) (frame.Frame, string, error) {
	schema := f.Schema()
	if err := numericTarget(schema, target); err != nil {
		return frame.Frame{}, "", err
	}
	targetCol, err := f.Col(target)
	if err != nil {
		return frame.Frame{}, "", err
	}

	names := schema.Select(frame.Numeric, target)
	if len(names) < 2 {
		return f, "", nil
	}

	X, err := f.Dense(names...)
	if err != nil {
		return frame.Frame{}, "", err
	}
	corr := stats.AbsMatrix(stats.CorrelationMatrix(X))

	candidates := CollinearFeatures(corr, names, threshold)
	if len(candidates) == 0 {
		return f, "", nil
	}

	y := targetCol.Floats()
	drop, lowest := "", math.Inf(1)
	for _, name := range candidates {
		c, _ := f.Col(name)
		r := stats.Correlation(c.Floats(), y)
		if math.IsNaN(r) {
			continue
		}
		if r < lowest {
			drop, lowest = name, r
		}
	}
	if drop == "" {
		return f, "", nil
	}

	out, err := f.Drop(drop)
	if err != nil {
		return frame.Frame{}, "", err
	}
	return out, drop, nil
}

func numericTarget(s frame.Schema, target string) error {
	kind, ok := s.KindOf(target)
	if !ok {
		return errors.Newf(errors.ErrorTypeData, "target column %q not found", target)
	}
	if kind != frame.Numeric {
		return errors.Newf(errors.ErrorTypeData, "target %q is %s, not numeric", target, kind)
	}
	return nil
}
