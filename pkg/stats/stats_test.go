package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMeanStd(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5.0, Mean(x), 1e-12)
	assert.InDelta(t, 2.0, Std(x), 1e-12)
	assert.Zero(t, Mean(nil))
	assert.Zero(t, Std(nil))
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	assert.InDelta(t, 1.0, Correlation(x, []float64{2, 4, 6, 8, 10}), 1e-12)
	assert.InDelta(t, -1.0, Correlation(x, []float64{5, 4, 3, 2, 1}), 1e-12)
	assert.True(t, math.IsNaN(Correlation(x, []float64{3, 3, 3, 3, 3})))
	assert.True(t, math.IsNaN(Correlation(x, []float64{1, 2})))
}

func TestCorrelationMatrix(t *testing.T) {
	X := mat.NewDense(4, 3, []float64{
		1, 2, 7,
		2, 4, 7,
		3, 6, 7,
		4, 9, 7,
	})
	corr := AbsMatrix(CorrelationMatrix(X))

	assert.Equal(t, 3, corr.SymmetricDim())
	assert.InDelta(t, Correlation([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 9}), corr.At(0, 1), 1e-12)
	assert.Equal(t, corr.At(0, 1), corr.At(1, 0))
	assert.True(t, math.IsNaN(corr.At(0, 2)), "constant column correlates as NaN")
}

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	s := NewStandardScaler()
	Y, err := s.FitTransform(X)
	require.NoError(t, err)

	col := mat.Col(nil, 0, Y)
	assert.InDelta(t, 0.0, Mean(col), 1e-12)
	assert.InDelta(t, 1.0, Std(col), 1e-12)
	assert.Equal(t, []float64{0, 0, 0, 0}, mat.Col(nil, 1, Y), "constant column scales to zero")
	assert.Equal(t, 1.0, s.Std[1])

	// input untouched
	assert.Equal(t, 1.0, X.At(0, 0))
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScaler()
	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	assert.Error(t, err)

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.Transform(mat.NewDense(2, 3, nil))
	assert.Error(t, err)
}

func TestMissingValuesArePairwiseComplete(t *testing.T) {
	nan := math.NaN()
	x := []float64{1, 2, 3, 4, 5, nan}
	y := []float64{1.1, 2.1, 2.9, 4.2, 5, 6}

	assert.InDelta(t, 3.0, Mean(x), 1e-12)
	assert.InDelta(t, math.Sqrt(2), Std(x), 1e-12)
	assert.InDelta(t, 0.9974083346927145, Correlation(x, y), 1e-12)
	assert.True(t, math.IsNaN(Correlation([]float64{1, nan}, []float64{nan, 2})))

	X := mat.NewDense(6, 2, nil)
	X.SetCol(0, x)
	X.SetCol(1, y)
	corr := CorrelationMatrix(X)
	assert.InDelta(t, Correlation(x, y), corr.At(0, 1), 1e-12)
	assert.InDelta(t, 1.0, corr.At(0, 0), 1e-12)
}

func TestStandardScalerKeepsMissing(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, math.NaN(), 3})

	s := NewStandardScaler()
	Y, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, s.Mean[0], 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), s.Std[0], 1e-12)

	col := mat.Col(nil, 0, Y)
	assert.True(t, math.IsNaN(col[2]))
	assert.InDelta(t, -math.Sqrt(1.5), col[0], 1e-12)
	assert.InDelta(t, 0.0, col[1], 1e-12)
	assert.InDelta(t, math.Sqrt(1.5), col[3], 1e-12)
}
