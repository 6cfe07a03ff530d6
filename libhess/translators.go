package libhess

import (
	"github.com/fine-structures/hess/hess"
)

// Translator is the canonical permutation acting on fragments for one cycle type.
type Translator struct {
	Perm      hess.Perm
	CycleType hess.Partition
}

// Translators returns one Translator per partition of n, in partition order.
//
// For each part p, the code gets p-1 zeros followed by the entry p-1, so each part
// becomes a cycle of length p on consecutive values.
func Translators(n int) []Translator {
	parts := hess.EnumPartitions(n)
	out := make([]Translator, 0, len(parts))
	for _, part := range parts {
		code := make(hess.Code, 0, n)
		for _, p := range part {
			for i := 0; i < p-1; i++ {
				code = append(code, 0)
			}
			code = append(code, p-1)
		}
		out = append(out, Translator{
			Perm:      code.Perm(),
			CycleType: part,
		})
	}
	return out
}
