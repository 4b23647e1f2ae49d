package rules

// matchResult is the three-valued outcome of evaluating one trigger: the
// trigger may be absent from the rule (unset), satisfied (matched) or
// unsatisfied (noMatch). Only matched coerces to a boolean true.
type matchResult int

const (
	unset matchResult = iota
	matched
	noMatch
)

func (r matchResult) String() string {
	switch r {
	case unset:
		return "unset"
	case matched:
		return "match"
	case noMatch:
		return "no-match"
	default:
		return "invalid"
	}
}

// combineAnd is the three-valued AND: matched iff both operands matched,
// noMatch if either is noMatch, otherwise the non-unset operand (or unset
// when both are). Commutative and associative; unset is the identity.
func combineAnd(a, b matchResult) matchResult {
	switch {
	case a == matched && b == matched:
		return matched
	case a == noMatch || b == noMatch:
		return noMatch
	case a == unset:
		return b
	default:
		return a
	}
}

// combineOr is the three-valued OR: matched if either operand matched,
// otherwise the first non-unset operand (or unset when both are).
func combineOr(a, b matchResult) matchResult {
	switch {
	case a == matched || b == matched:
		return matched
	case a != unset:
		return a
	default:
		return b
	}
}

// asBool coerces a fold result to a boolean. Both unset and noMatch are
// false: a rule with no configured triggers never matches.
func (r matchResult) asBool() bool {
	return r == matched
}
