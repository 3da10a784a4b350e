// Package frame implements the tabular dataset passed between pipeline stages.
//
// A Frame is an ordered set of equal-length columns, each tagged with a Kind. Frames are
// values: every operation returns a new Frame and leaves its receiver untouched, so a stage
// can be tested in isolation and its input reused.
package frame

import (
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
)

// Missing is the text of a missing categorical or temporal cell.
const Missing = "NaN"

// DateLayout is the storage layout of temporal cells.
const DateLayout = "2006-01-02"

// Column is a named, kind-tagged gota series.
type Column struct {
	name string
	kind Kind
	s    series.Series
}

// NewNumeric builds a numeric column.
func NewNumeric(name string, values []float64) Column {
	return Column{name: name, kind: Numeric, s: series.New(values, series.Float, name)}
}

// NewCategorical builds a categorical column; cells equal to Missing are missing.
func NewCategorical(name string, values []string) Column {
	return Column{name: name, kind: Categorical, s: series.New(values, series.String, name)}
}

// NewTemporal builds a column of calendar dates. Zero times are stored as missing.
func NewTemporal(name string, values []time.Time) Column {
	raw := make([]string, len(values))
	for i, v := range values {
		if v.IsZero() {
			raw[i] = Missing
			continue
		}
		raw[i] = v.Format(DateLayout)
	}
	return Column{name: name, kind: Temporal, s: series.New(raw, series.String, name)}
}

func (c Column) Name() string { return c.name }
func (c Column) Kind() Kind   { return c.kind }
func (c Column) Len() int     { return c.s.Len() }

// Floats returns a copy of the column as float64 values; missing cells are NaN.
func (c Column) Floats() []float64 { return c.s.Float() }

// Strings returns a copy of the column as text; missing cells are Missing.
func (c Column) Strings() []string { return c.s.Records() }

// IsMissing reports, per row, whether the cell is missing. Numeric cells are missing
// when NaN.
func (c Column) IsMissing() []bool {
	if c.kind != Numeric {
		return c.s.IsNaN()
	}
	vals := c.s.Float()
	out := make([]bool, len(vals))
	for i, v := range vals {
		out[i] = math.IsNaN(v)
	}
	return out
}

// Times parses a temporal column back into calendar values; missing cells are zero times.
func (c Column) Times() ([]time.Time, error) {
	if c.kind != Temporal {
		return nil, errors.Newf(errors.ErrorTypeData, "column %q is %s, not temporal", c.name, c.kind)
	}
	raw := c.s.Records()
	missing := c.s.IsNaN()
	out := make([]time.Time, len(raw))
	for i, v := range raw {
		if missing[i] {
			continue
		}
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeParse, "stored date in column "+c.name)
		}
		out[i] = t
	}
	return out, nil
}

// Frame is an immutable table of columns that share a row count.
type Frame struct {
	cols  []Column
	index map[string]int
	nrows int
}

// New builds a frame from columns with distinct names and equal lengths.
func New(cols ...Column) (Frame, error) {
	nrows := 0
	if len(cols) > 0 {
		nrows = cols[0].Len()
	}
	return build(nrows, cols)
}

func build(nrows int, cols []Column) (Frame, error) {
	f := Frame{
		cols:  make([]Column, len(cols)),
		index: make(map[string]int, len(cols)),
		nrows: nrows,
	}
	for i, c := range cols {
		if c.Len() != nrows {
			return Frame{}, errors.Newf(errors.ErrorTypeData,
				"column %q has %d rows, frame has %d", c.name, c.Len(), nrows)
		}
		if _, dup := f.index[c.name]; dup {
			return Frame{}, errors.Newf(errors.ErrorTypeData, "duplicate column %q", c.name)
		}
		f.index[c.name] = i
		f.cols[i] = c
	}
	return f, nil
}

// FromDataFrame converts a gota DataFrame, tagging integer and float columns Numeric
// and everything else Categorical.
func FromDataFrame(df dataframe.DataFrame) (Frame, error) {
	if df.Err != nil {
		return Frame{}, errors.Wrap(df.Err, errors.ErrorTypeData, "invalid dataframe")
	}
	cols := make([]Column, 0, df.Ncol())
	for _, name := range df.Names() {
		s := df.Col(name)
		kind := kindOf(s.Type())
		var stored series.Series
		if kind == Numeric {
			stored = series.New(s.Float(), series.Float, name)
		} else {
			stored = series.New(s.Records(), series.String, name)
		}
		cols = append(cols, Column{name: name, kind: kind, s: stored})
	}
	return build(df.Nrow(), cols)
}

func (f Frame) Nrow() int { return f.nrows }
func (f Frame) Ncol() int { return len(f.cols) }

// Dims returns the (rows, columns) shape.
func (f Frame) Dims() (int, int) { return f.nrows, len(f.cols) }

// Names returns the column names in order.
func (f Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.name
	}
	return out
}

// Schema returns the ordered names and kinds.
func (f Frame) Schema() Schema {
	s := Schema{Names: make([]string, len(f.cols)), Kinds: make([]Kind, len(f.cols))}
	for i, c := range f.cols {
		s.Names[i] = c.name
		s.Kinds[i] = c.kind
	}
	return s
}

// Has reports whether the frame holds a column with this name.
func (f Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Col returns the named column.
func (f Frame) Col(name string) (Column, error) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, errors.Newf(errors.ErrorTypeData, "column %q not found", name)
	}
	return f.cols[i], nil
}

// With returns a frame where each given column replaces the same-named column in place,
// or is appended when no such column exists.
func (f Frame) With(cols ...Column) (Frame, error) {
	next := make([]Column, len(f.cols), len(f.cols)+len(cols))
	copy(next, f.cols)
	pos := make(map[string]int, len(f.index))
	for k, v := range f.index {
		pos[k] = v
	}
	for _, c := range cols {
		if i, ok := pos[c.name]; ok {
			next[i] = c
			continue
		}
		pos[c.name] = len(next)
		next = append(next, c)
	}
	return build(f.nrows, next)
}

// Drop returns the frame without the named columns. Unknown names are an error.
func (f Frame) Drop(names ...string) (Frame, error) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		if !f.Has(n) {
			return Frame{}, errors.Newf(errors.ErrorTypeData, "cannot drop unknown column %q", n)
		}
		drop[n] = struct{}{}
	}
	next := make([]Column, 0, len(f.cols))
	for _, c := range f.cols {
		if _, ok := drop[c.name]; !ok {
			next = append(next, c)
		}
	}
	return build(f.nrows, next)
}

// Select returns a frame holding only the named columns, in the given order.
func (f Frame) Select(names ...string) (Frame, error) {
	next := make([]Column, 0, len(names))
	for _, n := range names {
		c, err := f.Col(n)
		if err != nil {
			return Frame{}, err
		}
		next = append(next, c)
	}
	return build(f.nrows, next)
}

// Dense copies the named numeric columns (all numeric columns when none are named)
// into a rows x columns gonum matrix.
func (f Frame) Dense(names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		names = f.Schema().Select(Numeric)
	}
	if f.nrows == 0 || len(names) == 0 {
		return nil, errors.Newf(errors.ErrorTypeData, "cannot build a %dx%d matrix", f.nrows, len(names))
	}
	m := mat.NewDense(f.nrows, len(names), nil)
	for j, n := range names {
		c, err := f.Col(n)
		if err != nil {
			return nil, err
		}
		if c.kind != Numeric {
			return nil, errors.Newf(errors.ErrorTypeData, "column %q is %s, not numeric", n, c.kind)
		}
		m.SetCol(j, c.Floats())
	}
	return m, nil
}
