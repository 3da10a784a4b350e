package frame

import "github.com/go-gota/gota/series"

// Kind tags the semantic type of a column.
type Kind uint8

const (
	Numeric Kind = iota
	Categorical
	Temporal
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Temporal:
		return "temporal"
	default:
		return "unknown"
	}
}

// kindOf maps a gota type detected at ingest to a column kind.
func kindOf(t series.Type) Kind {
	switch t {
	case series.Int, series.Float:
		return Numeric
	default:
		return Categorical
	}
}

// Schema describes the structure of a dataset.
type Schema struct {
	Names []string
	Kinds []Kind
}

// KindOf returns the kind of the named column.
func (s Schema) KindOf(name string) (Kind, bool) {
	for i, n := range s.Names {
		if n == name {
			return s.Kinds[i], true
		}
	}
	return 0, false
}

// Select returns, in schema order, the names of columns of kind k that are not excluded.
func (s Schema) Select(k Kind, exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}
	var out []string
	for i, n := range s.Names {
		if s.Kinds[i] != k {
			continue
		}
		if _, ok := skip[n]; ok {
			continue
		}
		out = append(out, n)
	}
	return out
}
