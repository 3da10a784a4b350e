package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/config"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/dataprep"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
)

const fixture = "../dataprep/testdata/nba2k_sample.csv"

func sampleConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Source.Dir = dir
	cfg.HighCardinality = 10
	return cfg
}

func TestPipelineRunOrder(t *testing.T) {
	f, err := frame.New(frame.NewNumeric("x", []float64{1, 2}))
	require.NoError(t, err)

	var order []string
	step := func(name string) Stage {
		return StageFunc{StageName: name, Fn: func(f frame.Frame) (frame.Frame, error) {
			order = append(order, name)
			return f.With(frame.NewNumeric(name, []float64{0, 0}))
		}}
	}

	core, logs := observer.New(zapcore.InfoLevel)
	out, err := NewPipeline(zap.New(core), step("a"), step("b")).Run(f)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, []string{"x", "a", "b"}, out.Names())
	assert.Equal(t, 2, logs.FilterMessage("stage complete").Len())
}

func TestPipelineRowCountChange(t *testing.T) {
	f, err := frame.New(frame.NewNumeric("x", []float64{1, 2}))
	require.NoError(t, err)

	shrink := StageFunc{StageName: "shrink", Fn: func(frame.Frame) (frame.Frame, error) {
		return frame.New(frame.NewNumeric("x", []float64{1}))
	}}
	_, err = NewPipeline(nil, shrink).Run(f)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
	assert.Contains(t, err.Error(), "shrink")
}

func TestPipelineStageErrorKeepsType(t *testing.T) {
	f, err := frame.New(frame.NewNumeric("x", []float64{1}))
	require.NoError(t, err)

	failing := StageFunc{StageName: "parse", Fn: func(frame.Frame) (frame.Frame, error) {
		return frame.Frame{}, errors.New(errors.ErrorTypeParse, "bad cell")
	}}
	core, logs := observer.New(zapcore.ErrorLevel)
	_, err = NewPipeline(zap.New(core), failing).Run(f)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParse))
	assert.Equal(t, 1, logs.FilterMessage("stage failed").Len())
}

func TestProcessSample(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	res, err := Process(fixture, sampleConfig(t.TempDir()), zap.New(core))
	require.NoError(t, err)

	s := Summarize(res)
	assert.Equal(t, 12, s.Rows)
	assert.Equal(t, 29, s.Columns)
	assert.Equal(t, 12, s.TargetLength)
	assert.Equal(t, dataprep.ColSalary, s.TargetName)
	assert.Len(t, s.Features, 29)
	assert.NotContains(t, s.Features, dataprep.ColExperience)

	dropped := logs.FilterMessage("dropped collinear feature").All()
	require.Len(t, dropped, 1)
	assert.Equal(t, dataprep.ColExperience, dropped[0].ContextMap()["column"])
	assert.Equal(t, 4, logs.FilterMessage("stage complete").Len())
}

func TestProcessMissingFile(t *testing.T) {
	_, err := Process(filepath.Join(t.TempDir(), "none.csv"), sampleConfig(t.TempDir()), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypePrecondition))
}

func TestRunUsesCachedFile(t *testing.T) {
	dir := t.TempDir()
	raw, err := os.ReadFile(fixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), raw, 0o644))

	cfg := sampleConfig(dir)
	cfg.Source.URL = "http://127.0.0.1:1/unreachable.csv"

	res, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	rows, cols := res.Features.Dims()
	assert.Equal(t, 12, rows)
	assert.Equal(t, 29, cols)
}
