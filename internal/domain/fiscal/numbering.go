package fiscal

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberingSpace is an independent sequence of record numbers.
// Each kind has one space for ordinary records and one for credit notes.
type NumberingSpace struct {
	Kind       RecordKind
	CreditNote bool
}

// Key returns a stable identifier for the space, e.g. "ISSUED" or "ISSUED_CN"
func (s NumberingSpace) Key() string {
	if s.CreditNote {
		return string(s.Kind) + "_CN"
	}
	return string(s.Kind)
}

// String implements fmt.Stringer
func (s NumberingSpace) String() string {
	return s.Key()
}

// AllNumberingSpaces lists every numbering space
func AllNumberingSpaces() []NumberingSpace {
	spaces := make([]NumberingSpace, 0, 6)
	for _, k := range []RecordKind{KindIssued, KindReceived, KindExpense} {
		spaces = append(spaces, NumberingSpace{Kind: k}, NumberingSpace{Kind: k, CreditNote: true})
	}
	return spaces
}

// DefaultPadding is the zero-padded width of the numeric suffix
const DefaultPadding = 4

// NumberingScheme formats sequence values into record numbers
type NumberingScheme struct {
	Prefixes map[string]string // Keyed by NumberingSpace.Key()
	Padding  int
}

// DefaultNumberingScheme returns the standard prefixes
func DefaultNumberingScheme() NumberingScheme {
	return NumberingScheme{
		Prefixes: map[string]string{
			"ISSUED":      "FAC",
			"ISSUED_CN":   "ABO",
			"RECEIVED":    "FRE",
			"RECEIVED_CN": "ABR",
			"EXPENSE":     "GAS",
			"EXPENSE_CN":  "AGS",
		},
		Padding: DefaultPadding,
	}
}

// Prefix returns the prefix configured for space, falling back to the space key
func (n NumberingScheme) Prefix(space NumberingSpace) string {
	if p, ok := n.Prefixes[space.Key()]; ok && p != "" {
		return p
	}
	return space.Key()
}

// Format renders seq in space, e.g. FAC-0007
func (n NumberingScheme) Format(space NumberingSpace, seq int64) string {
	padding := n.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	return fmt.Sprintf("%s-%0*d", n.Prefix(space), padding, seq)
}

// NextAfter returns the number following last in space
func (n NumberingScheme) NextAfter(space NumberingSpace, last string) string {
	return n.Format(space, SequenceOf(last)+1)
}

// SequenceOf parses the trailing numeric suffix of a record number.
// Empty or unparsable numbers yield 0 so the next value is 1.
func SequenceOf(number string) int64 {
	number = strings.TrimSpace(number)
	i := len(number)
	for i > 0 && number[i-1] >= '0' && number[i-1] <= '9' {
		i--
	}
	if i == len(number) {
		return 0
	}
	seq, err := strconv.ParseInt(number[i:], 10, 64)
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}
