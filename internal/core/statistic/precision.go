package statistic

import (
	"strings"
)

// Precision is the granularity a statistic bucket represents.
// The set is closed: Hour, Day and Month are the only values.
type Precision uint8

const (
	Hour Precision = iota + 1
	Day
	Month
)

// Precisions lists every supported precision in ascending granularity.
var Precisions = []Precision{Hour, Day, Month}

var precisionNames = map[Precision]string{
	Hour:  "HOUR",
	Day:   "DAY",
	Month: "MONTH",
}

// String returns the persisted name (HOUR, DAY, MONTH).
func (p Precision) String() string {
	if name, ok := precisionNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether p is one of the known precisions.
func (p Precision) Valid() bool {
	_, ok := precisionNames[p]
	return ok
}

// ParsePrecision converts a name such as "DAY" or "day" into a Precision.
func ParsePrecision(s string) (Precision, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for p, n := range precisionNames {
		if n == name {
			return p, nil
		}
	}
	return 0, InvalidArgumentf("unknown precision %q", s)
}

// MarshalText implements encoding.TextMarshaler so precisions serialize by name.
func (p Precision) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, InvalidArgumentf("unknown precision %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precision) UnmarshalText(text []byte) error {
	parsed, err := ParsePrecision(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PrecisionSet is a set of precisions backed by a bit mask.
type PrecisionSet uint8

// NewPrecisionSet builds a set from the given precisions. Unknown values are ignored.
func NewPrecisionSet(precisions ...Precision) PrecisionSet {
	var s PrecisionSet
	for _, p := range precisions {
		s = s.With(p)
	}
	return s
}

// ParsePrecisionSet parses a list of precision names. Duplicates collapse.
func ParsePrecisionSet(names []string) (PrecisionSet, error) {
	var s PrecisionSet
	for _, name := range names {
		p, err := ParsePrecision(name)
		if err != nil {
			return 0, err
		}
		s = s.With(p)
	}
	return s, nil
}

// With returns a copy of the set including p.
func (s PrecisionSet) With(p Precision) PrecisionSet {
	if !p.Valid() {
		return s
	}
	return s | 1<<p
}

// Has reports whether p is in the set.
func (s PrecisionSet) Has(p Precision) bool {
	return p.Valid() && s&(1<<p) != 0
}

// IsEmpty reports whether the set holds no precision.
func (s PrecisionSet) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of precisions in the set.
func (s PrecisionSet) Len() int {
	n := 0
	for _, p := range Precisions {
		if s.Has(p) {
			n++
		}
	}
	return n
}

// Precisions returns the members in ascending granularity order.
func (s PrecisionSet) Precisions() []Precision {
	out := make([]Precision, 0, len(Precisions))
	for _, p := range Precisions {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Strings returns the member names in ascending granularity order.
func (s PrecisionSet) Strings() []string {
	members := s.Precisions()
	out := make([]string, len(members))
	for i, p := range members {
		out[i] = p.String()
	}
	return out
}

func (s PrecisionSet) String() string {
	return "[" + strings.Join(s.Strings(), ",") + "]"
}
