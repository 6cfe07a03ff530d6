package hess

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// TupleExpr is a tuple of integer entries as typed on a command line or in a script:
// "(0, 0, 1)", "[0,0,1]", "0 0 1" and "001" all name the same tuple.
//
// A lone unbracketed run of digits is the compact form, one entry per digit.
// Entries of 10 or more need brackets or separators: "[10]", "10, 0".
type TupleExpr struct {
	Open    string   `parser:"@(\"(\" | \"[\")?"`
	Entries []string `parser:"(@Int \",\"?)*"`
	Close   string   `parser:"@(\")\" | \"]\")?"`
}

func (tuple *TupleExpr) isCompact() bool {
	return len(tuple.Open) == 0 && len(tuple.Close) == 0 && len(tuple.Entries) == 1 && len(tuple.Entries[0]) > 1
}

var sTupleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[()\[\],]`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})

var sParseTupleExpr = participle.MustBuild[TupleExpr](
	participle.Lexer(sTupleLexer),
)

// ParseTuple reads a tuple expression into its integer entries.
func ParseTuple(expr string) ([]int, error) {
	tuple, err := sParseTupleExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(ErrBadTuple, "%q: %v", expr, err)
	}
	if tuple.isCompact() {
		digits := tuple.Entries[0]
		entries := make([]int, len(digits))
		for i := range digits {
			entries[i] = int(digits[i] - '0')
		}
		return entries, nil
	}
	entries := make([]int, len(tuple.Entries))
	for i, entry := range tuple.Entries {
		entries[i], err = strconv.Atoi(entry)
		if err != nil {
			return nil, errors.Wrapf(ErrBadTuple, "%q", expr)
		}
	}
	return entries, nil
}

// ParsePath reads and validates a Path.
func ParsePath(expr string) (Path, error) {
	entries, err := ParseTuple(expr)
	if err != nil {
		return nil, err
	}
	path := Path(entries)
	return path, path.Validate()
}

// ParsePerm reads and validates a Perm in blist form.
func ParsePerm(expr string) (Perm, error) {
	entries, err := ParseTuple(expr)
	if err != nil {
		return nil, err
	}
	perm := Perm(entries)
	return perm, perm.Validate()
}

// ParseCode reads and validates a Code in bfact form.
func ParseCode(expr string) (Code, error) {
	entries, err := ParseTuple(expr)
	if err != nil {
		return nil, err
	}
	code := Code(entries)
	return code, code.Validate()
}

// ParsePartition reads and validates a Partition.
func ParsePartition(expr string) (Partition, error) {
	entries, err := ParseTuple(expr)
	if err != nil {
		return nil, err
	}
	part := Partition(entries)
	return part, part.Validate()
}
