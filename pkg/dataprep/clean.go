package dataprep

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/data"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/frame"
)

// Columns of the NBA 2K dataset the pipeline knows about.
const (
	ColBirthDay   = "b_day"
	ColDraftYear  = "draft_year"
	ColTeam       = "team"
	ColHeight     = "height"
	ColWeight     = "weight"
	ColSalary     = "salary"
	ColCountry    = "country"
	ColDraftRound = "draft_round"
	ColVersion    = "version"
)

const (
	NoTeam    = "No Team"
	USA       = "USA"
	NotUSA    = "Not-USA"
	Undrafted = "Undrafted"

	// month and day may be unpadded, e.g. "1/5/84"
	birthDayLayout  = "1/2/06"
	draftYearLayout = "2006"
	currencyPrefix  = "$"
)

// columnCleaner rewrites one column of a raw frame.
type columnCleaner struct {
	name  string
	clean func(frame.Column) (frame.Column, error)
}

var cleaners = []columnCleaner{
	{ColBirthDay, func(c frame.Column) (frame.Column, error) { return parseDates(c, birthDayLayout) }},
	{ColDraftYear, func(c frame.Column) (frame.Column, error) { return parseDates(c, draftYearLayout) }},
	{ColTeam, func(c frame.Column) (frame.Column, error) { return ImputeConstant(c, NoTeam), nil }},
	{ColHeight, func(c frame.Column) (frame.Column, error) { return parseNumbers(c, ParseHeight) }},
	{ColWeight, func(c frame.Column) (frame.Column, error) { return parseNumbers(c, ParseWeight) }},
	{ColSalary, func(c frame.Column) (frame.Column, error) { return parseNumbers(c, ParseSalary) }},
	{ColCountry, func(c frame.Column) (frame.Column, error) { return mapText(c, CollapseCountry), nil }},
	{ColDraftRound, func(c frame.Column) (frame.Column, error) { return mapText(c, NormalizeDraftRound), nil }},
}

// Clean loads the CSV at path and normalizes its raw encodings into typed columns.
// The path must name an existing regular file.
func Clean(path string) (frame.Frame, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return frame.Frame{}, errors.Newf(errors.ErrorTypePrecondition, "%s is not a file", path)
	}

	raw, err := data.LoadCSV(path)
	if err != nil {
		return frame.Frame{}, err
	}
	return CleanFrame(raw)
}

// CleanFrame applies the per-column normalizations to an already loaded frame.
func CleanFrame(f frame.Frame) (frame.Frame, error) {
	cleaned := make([]frame.Column, 0, len(cleaners))
	for _, cl := range cleaners {
		c, err := f.Col(cl.name)
		if err != nil {
			return frame.Frame{}, err
		}
		out, err := cl.clean(c)
		if err != nil {
			return frame.Frame{}, err
		}
		cleaned = append(cleaned, out)
	}
	return f.With(cleaned...)
}

// ParseHeight reads the metric height, the last token of e.g. "6-9 / 2.06".
func ParseHeight(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, errors.Newf(errors.ErrorTypeParse, "empty height %q", s)
	}
	return parseFloat(fields[len(fields)-1])
}

// ParseWeight reads the metric weight, the second-to-last token of e.g. "250 lbs. / 113.4 kg.".
func ParseWeight(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0, errors.Newf(errors.ErrorTypeParse, "weight %q has fewer than two tokens", s)
	}
	return parseFloat(fields[len(fields)-2])
}

// ParseSalary strips the "$" prefix and thousands separators, e.g. "$7,500,000".
func ParseSalary(s string) (float64, error) {
	s = strings.TrimPrefix(s, currencyPrefix)
	return parseFloat(strings.ReplaceAll(s, ",", ""))
}

// CollapseCountry reduces a country to USA or Not-USA.
func CollapseCountry(s string) string {
	if s == USA {
		return USA
	}
	return NotUSA
}

// NormalizeDraftRound maps "Undrafted" to "0".
func NormalizeDraftRound(s string) string {
	if s == Undrafted {
		return "0"
	}
	return s
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeParse, "not a number: "+strconv.Quote(s))
	}
	return v, nil
}

// texts returns a column's cells as text. Numeric cells print without a fractional
// part when they are whole, so a year detected as an integer reads back as "2009".
func texts(c frame.Column) []string {
	if c.Kind() != frame.Numeric {
		return c.Strings()
	}
	vals := c.Floats()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return out
}

func parseError(c frame.Column, row int, value string, cause error) error {
	return errors.Wrap(cause, errors.ErrorTypeParse, "column "+c.Name()+" row "+strconv.Itoa(row)).
		WithDetail("column", c.Name()).
		WithDetail("row", row).
		WithDetail("value", value)
}

func parseNumbers(c frame.Column, parse func(string) (float64, error)) (frame.Column, error) {
	raw := texts(c)
	missing := c.IsMissing()
	out := make([]float64, len(raw))
	for i, s := range raw {
		if missing[i] {
			return frame.Column{}, parseError(c, i, s, errors.New(errors.ErrorTypeParse, "missing value"))
		}
		v, err := parse(s)
		if err != nil {
			return frame.Column{}, parseError(c, i, s, err)
		}
		out[i] = v
	}
	return frame.NewNumeric(c.Name(), out), nil
}

func parseDates(c frame.Column, layout string) (frame.Column, error) {
	raw := texts(c)
	missing := c.IsMissing()
	out := make([]time.Time, len(raw))
	for i, s := range raw {
		if missing[i] {
			return frame.Column{}, parseError(c, i, s, errors.New(errors.ErrorTypeParse, "missing date"))
		}
		t, err := time.Parse(layout, s)
		if err != nil {
			return frame.Column{}, parseError(c, i, s, err)
		}
		out[i] = t
	}
	return frame.NewTemporal(c.Name(), out), nil
}

// mapText rewrites every cell, missing ones included, into a categorical column.
func mapText(c frame.Column, fn func(string) string) frame.Column {
	raw := texts(c)
	missing := c.IsMissing()
	out := make([]string, len(raw))
	for i, s := range raw {
		if missing[i] {
			s = ""
		}
		out[i] = fn(s)
		if missing[i] && out[i] == "" {
			out[i] = frame.Missing
		}
	}
	return frame.NewCategorical(c.Name(), out)
}
