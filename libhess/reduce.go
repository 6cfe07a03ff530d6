package libhess

import (
	"math/big"

	"github.com/fine-structures/hess/hess"
	"github.com/fine-structures/hess/libhess/csf"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// checkPath rejects paths the engine cannot take.
func checkPath(path hess.Path) error {
	if n := len(path); n < 1 || n > hess.MaxSize {
		return errors.Wrapf(hess.ErrBadSize, "size %d for path %v", n, path)
	}
	return path.Validate()
}

// ComputeTable computes the table of the given kind for path.
//
// LeftTable and RightTable run the triangular reduction against the flowup basis;
// QChromatic runs the brute-force q-chromatic count.
func (ctx *Context) ComputeTable(kind hess.TableKind, path hess.Path) (*hess.Table, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	switch kind {
	case hess.QChromatic:
		return csf.Compute(path, ctx.Boxes(path)), nil
	case hess.LeftTable, hess.RightTable:
	default:
		return nil, errors.Wrapf(hess.ErrBadKind, "kind %d", kind)
	}

	r := ctx.newReduction(kind, path)
	T := hess.NewTable(kind, path)
	translators := Translators(len(path))
	for _, t := range translators {
		for _, code := range r.codes {
			degree, quo, err := r.reduce(t, code)
			if err != nil {
				return nil, err
			}
			if !quo.IsInt64() {
				return nil, errors.Wrapf(hess.ErrOverflow, "%v %v translator %v code %v", kind, path, t.Perm, code)
			}
			T.Add(t.CycleType, degree, quo.Int64())
		}
	}

	klog.V(2).Infof("%v[%v]: %d translators x %d codes", kind, path, len(translators), len(r.codes))
	return T, nil
}

// CheckRegular computes the right table for path and checks it against the regular
// representation (see hess.Table.RegularSum).
func (ctx *Context) CheckRegular(path hess.Path) (int64, bool, error) {
	T, err := ctx.ComputeTable(hess.RightTable, path)
	if err != nil {
		return 0, false, err
	}
	sum, ok := T.RegularSum()
	return sum, ok, nil
}

// reduction is the per-path state of a triangular reduction: every code's basis stalk.
type reduction struct {
	ctx   *Context
	kind  hess.TableKind
	path  hess.Path
	n     int
	codes []hess.Code
	basis map[string]*Stalk // Code.Key() => basis stalk
}

func (ctx *Context) newReduction(kind hess.TableKind, path hess.Path) *reduction {
	n := len(path)
	r := &reduction{
		ctx:   ctx,
		kind:  kind,
		path:  path,
		n:     n,
		codes: hess.EnumCodes(n),
	}
	r.basis = make(map[string]*Stalk, len(r.codes))
	for _, code := range r.codes {
		F := ctx.Flowup(code, path)
		r.basis[code.Key()] = StalkOf(n, F.Evaluate(kind), ctx.IndicesAbove(code))
	}
	return r
}

// reduce eliminates the translated, evaluated flowup fragment at code against the basis.
//
// Returns the factor count of the flowup value at code's own key and the quotient
// extracted at the final corner.
func (r *reduction) reduce(t Translator, code hess.Code) (int, *big.Int, error) {
	F := r.ctx.Flowup(code, r.path)
	own, found := F[code.Perm().Key()]
	if !found {
		panic("flowup fragment is missing its own code")
	}
	degree := own.Degree()

	work := StalkOf(r.n, F.Translate(t.Perm).Evaluate(r.kind), r.ctx.IndicesBelow(code))

	quo := new(big.Int)
	rem := new(big.Int)
	maxOff := MaxOffset(r.n)
	for o := Offset(0); o <= maxOff; o++ {
		coeff := work.At(o)
		if coeff.Sign() == 0 {
			quo.SetInt64(0)
			continue
		}

		shifted := shiftCode(code, o, true)
		B := r.basis[shifted.Key()]
		if B == nil || !shifted.IsValid() {
			return 0, nil, r.violation(hess.ErrMissingBasis, t, code, o)
		}
		lead := B.Lead()
		if lead.Sign() == 0 {
			return 0, nil, r.violation(hess.ErrZeroLead, t, code, o)
		}
		quo.QuoRem(coeff, lead, rem)
		if rem.Sign() != 0 {
			return 0, nil, r.violation(hess.ErrInexact, t, code, o)
		}
		if err := work.Eliminate(o, quo, B); err != nil {
			return 0, nil, err
		}
	}
	return degree, quo, nil
}

func (r *reduction) violation(err error, t Translator, code hess.Code, o Offset) error {
	err = errors.Wrapf(err, "%v path %v translator %v code %v offset %0*b",
		r.kind, r.path, t.Perm, code, max(r.n-1, 1), uint32(o))
	klog.Errorf("%v", err)
	return err
}
