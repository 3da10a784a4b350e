package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/config"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/data"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/dataprep"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
)

// Summary describes the shape of a pipeline result.
type Summary struct {
	Rows         int      `json:"rows"`
	Columns      int      `json:"columns"`
	TargetName   string   `json:"target"`
	TargetLength int      `json:"target_length"`
	Features     []string `json:"features"`
}

// Summarize reports the feature matrix shape and target length of r.
func Summarize(r dataprep.Result) Summary {
	rows, cols := r.Features.Dims()
	return Summary{
		Rows:         rows,
		Columns:      cols,
		TargetName:   r.Target.Name(),
		TargetLength: r.Target.Len(),
		Features:     r.Features.Names(),
	}
}

// Stages returns the frame-to-frame steps between cleaning and transforming.
func Stages(cfg *config.Config, log *zap.Logger) []Stage {
	return []Stage{
		StageFunc{StageName: "feature", Fn: func(f frame.Frame) (frame.Frame, error) {
			out, dropped, err := dataprep.FeatureData(f, cfg.HighCardinality)
			if err == nil && len(dropped) > 0 {
				log.Info("dropped high-cardinality columns",
					zap.Strings("columns", dropped),
					zap.Int("threshold", cfg.HighCardinality))
			}
			return out, err
		}},
		StageFunc{StageName: "decorrelate", Fn: func(f frame.Frame) (frame.Frame, error) {
			out, dropped, err := dataprep.Decorrelate(f, cfg.Target, cfg.HighCorrelation)
			if err != nil {
				return out, err
			}
			if dropped == "" {
				log.Info("no collinear features above threshold", zap.Float64("threshold", cfg.HighCorrelation))
			} else {
				log.Info("dropped collinear feature", zap.String("column", dropped))
			}
			return out, nil
		}},
	}
}

// Process runs clean, feature, decorrelate and transform on the CSV at path.
func Process(path string, cfg *config.Config, log *zap.Logger) (dataprep.Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	start := time.Now()
	cleaned, err := dataprep.Clean(path)
	if err != nil {
		return dataprep.Result{}, err
	}
	rows, cols := cleaned.Dims()
	log.Info("stage complete",
		zap.String("stage", "clean"),
		zap.Int("rows", rows),
		zap.Int("columns", cols),
		zap.Duration("duration", time.Since(start)))

	decorrelated, err := NewPipeline(log, Stages(cfg, log)...).Run(cleaned)
	if err != nil {
		return dataprep.Result{}, err
	}

	start = time.Now()
	result, err := dataprep.Transform(decorrelated, cfg.Target)
	if err != nil {
		return dataprep.Result{}, err
	}
	rows, cols = result.Features.Dims()
	log.Info("stage complete",
		zap.String("stage", "transform"),
		zap.Int("rows", rows),
		zap.Int("columns", cols),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

// Run acquires the dataset and processes it.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) (dataprep.Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	path, err := data.Acquire(ctx, cfg.Source, log)
	if err != nil {
		return dataprep.Result{}, err
	}
	return Process(path, cfg, log)
}
