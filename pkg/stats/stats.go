package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Mean computes the average of the non-NaN values of a slice.
func Mean(x []float64) float64 {
	x = present(x)
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Std computes the population standard deviation (divisor n) of the non-NaN values
// of a slice.
func Std(x []float64) float64 {
	x = present(x)
	if len(x) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(x, nil)
	return std
}

// Correlation computes the Pearson correlation coefficient between two slices over
// the rows where both values are present. It is NaN when fewer than two such rows
// remain, when either side is constant over them, or when the lengths differ.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) {
		return math.NaN()
	}
	x, y = pairs(x, y)
	if len(x) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(x, y, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}

// CorrelationMatrix returns the symmetric matrix of pairwise Pearson correlations
// between the columns of x (observations in rows). Each entry uses only the rows
// where both columns are present. Entries involving a constant column are NaN.
func CorrelationMatrix(x mat.Matrix) *mat.SymDense {
	_, c := x.Dims()
	cols := make([][]float64, c)
	for j := 0; j < c; j++ {
		cols[j] = mat.Col(nil, j, x)
	}
	corr := mat.NewSymDense(c, nil)
	for i := 0; i < c; i++ {
		for j := i; j < c; j++ {
			corr.SetSym(i, j, Correlation(cols[i], cols[j]))
		}
	}
	return corr
}

// present returns the non-NaN values of x.
func present(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// pairs keeps the positions where neither x nor y is NaN.
func pairs(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// AbsMatrix returns |m| element-wise as a new symmetric matrix.
func AbsMatrix(m *mat.SymDense) *mat.SymDense {
	n := m.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, math.Abs(m.At(i, j)))
		}
	}
	return out
}
