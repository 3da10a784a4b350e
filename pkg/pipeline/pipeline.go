// Package pipeline chains the preprocessing stages and runs them end to end.
package pipeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
)

// Stage is one frame-to-frame step.
type Stage interface {
	Name() string
	Apply(f frame.Frame) (frame.Frame, error)
}

// StageFunc adapts a function to a named Stage.
type StageFunc struct {
	StageName string
	Fn        func(frame.Frame) (frame.Frame, error)
}

func (s StageFunc) Name() string                             { return s.StageName }
func (s StageFunc) Apply(f frame.Frame) (frame.Frame, error) { return s.Fn(f) }

// Pipeline chains multiple stages.
type Pipeline struct {
	steps []Stage
	log   *zap.Logger
}

func NewPipeline(log *zap.Logger, steps ...Stage) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{steps: steps, log: log}
}

// Run feeds f through every stage in order. A stage that changes the row count is
// an error: rows stay aligned by position from input to output.
func (p *Pipeline) Run(f frame.Frame) (frame.Frame, error) {
	for _, step := range p.steps {
		start := time.Now()
		next, err := step.Apply(f)
		if err != nil {
			p.log.Error("stage failed", zap.String("stage", step.Name()), zap.Error(err))
			return frame.Frame{}, err
		}
		if next.Nrow() != f.Nrow() {
			return frame.Frame{}, errors.Newf(errors.ErrorTypeData,
				"stage %s changed row count from %d to %d", step.Name(), f.Nrow(), next.Nrow())
		}
		rows, cols := next.Dims()
		p.log.Info("stage complete",
			zap.String("stage", step.Name()),
			zap.Int("rows", rows),
			zap.Int("columns", cols),
			zap.Duration("duration", time.Since(start)))
		f = next
	}
	return f, nil
}
