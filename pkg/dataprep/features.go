package dataprep

import (
	"strings"
	"time"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
)

// Derived feature columns.
const (
	ColAge        = "age"
	ColExperience = "experience"
	ColBMI        = "bmi"
)

const versionPrefix = "NBA2k"

// superseded are the source columns replaced by the derived features.
var superseded = []string{ColVersion, ColBirthDay, ColDraftYear, ColWeight, ColHeight}

// ParseVersionYear turns a game version like "NBA2k20" into its calendar year.
// Two-digit years 69-99 map to 19xx, 00-68 to 20xx.
func ParseVersionYear(s string) (int, error) {
	yy, ok := strings.CutPrefix(s, versionPrefix)
	if !ok || len(yy) != 2 {
		return 0, errors.Newf(errors.ErrorTypeParse, "version %q does not match %sYY", s, versionPrefix)
	}
	t, err := time.Parse("06", yy)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeParse, "version year "+yy)
	}
	return t.Year(), nil
}

// DeriveFeatures adds age, experience and bmi and drops the columns they were
// computed from.
func DeriveFeatures(f frame.Frame) (frame.Frame, error) {
	versionCol, err := f.Col(ColVersion)
	if err != nil {
		return frame.Frame{}, err
	}
	versions := texts(versionCol)
	years := make([]int, len(versions))
	for i, v := range versions {
		if years[i], err = ParseVersionYear(v); err != nil {
			return frame.Frame{}, parseError(versionCol, i, v, err)
		}
	}

	births, err := times(f, ColBirthDay)
	if err != nil {
		return frame.Frame{}, err
	}
	drafts, err := times(f, ColDraftYear)
	if err != nil {
		return frame.Frame{}, err
	}
	weights, err := floats(f, ColWeight)
	if err != nil {
		return frame.Frame{}, err
	}
	heights, err := floats(f, ColHeight)
	if err != nil {
		return frame.Frame{}, err
	}

	n := f.Nrow()
	age := make([]float64, n)
	experience := make([]float64, n)
	bmi := make([]float64, n)
	for i := 0; i < n; i++ {
		age[i] = float64(years[i] - births[i].Year())
		experience[i] = float64(years[i] - drafts[i].Year())
		bmi[i] = weights[i] / (heights[i] * heights[i])
	}

	out, err := f.With(
		frame.NewNumeric(ColAge, age),
		frame.NewNumeric(ColExperience, experience),
		frame.NewNumeric(ColBMI, bmi),
	)
	if err != nil {
		return frame.Frame{}, err
	}
	return out.Drop(superseded...)
}

// HighCardinality lists, in frame order, the categorical columns with at least
// threshold distinct non-missing values.
func HighCardinality(f frame.Frame, threshold int) []string {
	var out []string
	for _, name := range f.Schema().Select(frame.Categorical) {
		c, _ := f.Col(name)
		if Cardinality(c) >= threshold {
			out = append(out, name)
		}
	}
	return out
}

// Cardinality counts the distinct non-missing values of a column.
func Cardinality(c frame.Column) int {
	seen := make(map[string]struct{})
	missing := c.IsMissing()
	for i, v := range texts(c) {
		if !missing[i] {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// FeatureData derives the numeric features and drops high-cardinality categoricals.
// It returns the transformed frame and the names of the dropped categorical columns.
func FeatureData(f frame.Frame, threshold int) (frame.Frame, []string, error) {
	derived, err := DeriveFeatures(f)
	if err != nil {
		return frame.Frame{}, nil, err
	}
	highCard := HighCardinality(derived, threshold)
	out, err := derived.Drop(highCard...)
	if err != nil {
		return frame.Frame{}, nil, err
	}
	return out, highCard, nil
}

func times(f frame.Frame, name string) ([]time.Time, error) {
	c, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	return c.Times()
}

func floats(f frame.Frame, name string) ([]float64, error) {
	c, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	if c.Kind() != frame.Numeric {
		return nil, errors.Newf(errors.ErrorTypeData, "column %q is %s, not numeric", name, c.Kind())
	}
	return c.Floats(), nil
}
