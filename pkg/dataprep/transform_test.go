package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
)

func prepared(t *testing.T) frame.Frame {
	t.Helper()
	cleaned, err := Clean(samplePath)
	require.NoError(t, err)
	featured, _, err := FeatureData(cleaned, 10)
	require.NoError(t, err)
	decorrelated, _, err := Decorrelate(featured, ColSalary, 0.5)
	require.NoError(t, err)
	return decorrelated
}

func TestTransformSample(t *testing.T) {
	in := prepared(t)

	res, err := Transform(in, ColSalary)
	require.NoError(t, err)

	rows, cols := res.Features.Dims()
	assert.Equal(t, 12, rows)
	assert.Equal(t, 29, cols)
	assert.Equal(t, 12, res.Target.Len())
	assert.False(t, res.Features.Has(ColSalary))

	names := res.Features.Names()
	assert.Equal(t, []string{"rating", ColAge, ColBMI}, names[:3])
	for _, n := range []string{"C", "F", "F-G", "G", USA, NotUSA, "0", "draft_round_1", "draft_round_2", "draft_peak_1", "draft_peak_2", "Undrafted", frame.Missing} {
		assert.True(t, res.Features.Has(n), n)
	}

	for _, n := range names[:3] {
		c, _ := res.Features.Col(n)
		mean, std := stat.PopMeanStdDev(c.Floats(), nil)
		assert.InDelta(t, 0, mean, 1e-9, n)
		assert.InDelta(t, 1, std, 1e-9, n)
	}

	// target unscaled
	salary, _ := in.Col(ColSalary)
	assert.Equal(t, salary.Floats(), res.Target.Floats())

	X, err := res.Dense()
	require.NoError(t, err)
	r, c := X.Dims()
	assert.Equal(t, 12, r)
	assert.Equal(t, 29, c)
}

func TestTransformDeterministic(t *testing.T) {
	in := prepared(t)

	a, err := Transform(in, ColSalary)
	require.NoError(t, err)
	b, err := Transform(in, ColSalary)
	require.NoError(t, err)

	assert.Equal(t, a.Features.Names(), b.Features.Names())
	ma, err := a.Dense()
	require.NoError(t, err)
	mb, err := b.Dense()
	require.NoError(t, err)
	assert.True(t, mat.Equal(ma, mb))
}

func TestTransformConstantColumn(t *testing.T) {
	f, err := frame.New(
		frame.NewNumeric("flat", []float64{3, 3, 3}),
		frame.NewNumeric("salary", []float64{1, 2, 3}),
	)
	require.NoError(t, err)

	res, err := Transform(f, "salary")
	require.NoError(t, err)
	flat, _ := res.Features.Col("flat")
	assert.Equal(t, []float64{0, 0, 0}, flat.Floats())
}

func TestTransformKeepsMissingNumeric(t *testing.T) {
	f, err := frame.New(
		frame.NewNumeric("rating", []float64{80, math.NaN(), 90, 100}),
		frame.NewNumeric("salary", []float64{1, 2, 3, 4}),
	)
	require.NoError(t, err)

	res, err := Transform(f, "salary")
	require.NoError(t, err)

	rating, _ := res.Features.Col("rating")
	got := rating.Floats()
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, -math.Sqrt(1.5), got[0], 1e-12)
	assert.InDelta(t, 0.0, got[2], 1e-12)
	assert.InDelta(t, math.Sqrt(1.5), got[3], 1e-12)
}

func TestTransformErrors(t *testing.T) {
	onlyTarget, err := frame.New(frame.NewNumeric("salary", []float64{1, 2}))
	require.NoError(t, err)
	_, err = Transform(onlyTarget, "salary")
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))

	textTarget, err := frame.New(
		frame.NewNumeric("rating", []float64{1, 2}),
		frame.NewCategorical("salary", []string{"a", "b"}),
	)
	require.NoError(t, err)
	_, err = Transform(textTarget, "salary")
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}
