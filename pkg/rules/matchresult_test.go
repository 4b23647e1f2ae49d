package rules

import "testing"

var allResults = []matchResult{unset, matched, noMatch}

func TestCombineAnd_TruthTable(t *testing.T) {
	want := map[[2]matchResult]matchResult{
		{unset, unset}:     unset,
		{unset, matched}:   matched,
		{unset, noMatch}:   noMatch,
		{matched, unset}:   matched,
		{matched, matched}: matched,
		{matched, noMatch}: noMatch,
		{noMatch, unset}:   noMatch,
		{noMatch, matched}: noMatch,
		{noMatch, noMatch}: noMatch,
	}

	for _, a := range allResults {
		for _, b := range allResults {
			if got := combineAnd(a, b); got != want[[2]matchResult{a, b}] {
				t.Errorf("combineAnd(%v, %v) = %v, want %v", a, b, got, want[[2]matchResult{a, b}])
			}
		}
	}
}

func TestCombineOr_TruthTable(t *testing.T) {
	want := map[[2]matchResult]matchResult{
		{unset, unset}:     unset,
		{unset, matched}:   matched,
		{unset, noMatch}:   noMatch,
		{matched, unset}:   matched,
		{matched, matched}: matched,
		{matched, noMatch}: matched,
		{noMatch, unset}:   noMatch,
		{noMatch, matched}: matched,
		{noMatch, noMatch}: noMatch,
	}

	for _, a := range allResults {
		for _, b := range allResults {
			if got := combineOr(a, b); got != want[[2]matchResult{a, b}] {
				t.Errorf("combineOr(%v, %v) = %v, want %v", a, b, got, want[[2]matchResult{a, b}])
			}
		}
	}
}

func TestCombine_CommutativeAssociative(t *testing.T) {
	combinators := map[string]func(a, b matchResult) matchResult{
		"and": combineAnd,
		"or":  combineOr,
	}

	for name, combine := range combinators {
		for _, a := range allResults {
			for _, b := range allResults {
				if combine(a, b) != combine(b, a) {
					t.Errorf("%s(%v, %v) is not commutative", name, a, b)
				}
				for _, c := range allResults {
					left := combine(combine(a, b), c)
					right := combine(a, combine(b, c))
					if left != right {
						t.Errorf("%s is not associative over (%v, %v, %v): %v != %v",
							name, a, b, c, left, right)
					}
				}
			}
		}
	}
}

func TestMatchResult_AsBool(t *testing.T) {
	if unset.asBool() {
		t.Error("unset must coerce to false")
	}
	if noMatch.asBool() {
		t.Error("noMatch must coerce to false")
	}
	if !matched.asBool() {
		t.Error("matched must coerce to true")
	}
}

// foldOf runs foldTriggers over constant evaluators.
func foldOf(t *testing.T, mode TriggerMatchMode, results ...matchResult) bool {
	t.Helper()

	evals := make([]func() (matchResult, error), len(results))
	for i, r := range results {
		evals[i] = func() (matchResult, error) { return r, nil }
	}

	out, err := foldTriggers(mode, evals...)
	if err != nil {
		t.Fatalf("foldTriggers(%v, %v) returned error: %v", mode, results, err)
	}
	return out.asBool()
}

// TestFoldTriggers_Ternary enumerates every 3-operand fold for both modes.
// The expectations are derived from the two-operand tables: for match_all
// the fold is true iff at least one operand matched and none is noMatch;
// for match_any iff at least one operand matched.
func TestFoldTriggers_Ternary(t *testing.T) {
	for _, a := range allResults {
		for _, b := range allResults {
			for _, c := range allResults {
				anyMatched := a == matched || b == matched || c == matched
				anyNoMatch := a == noMatch || b == noMatch || c == noMatch

				wantAll := anyMatched && !anyNoMatch
				if got := foldOf(t, MatchAll, a, b, c); got != wantAll {
					t.Errorf("match_all fold(%v, %v, %v) = %v, want %v", a, b, c, got, wantAll)
				}

				wantAny := anyMatched
				if got := foldOf(t, MatchAny, a, b, c); got != wantAny {
					t.Errorf("match_any fold(%v, %v, %v) = %v, want %v", a, b, c, got, wantAny)
				}
			}
		}
	}
}

func TestFoldTriggers_Exhaustive4(t *testing.T) {
	// The rule matcher folds exactly four trigger evaluators; cover the full
	// 3^4 input space for both modes.
	for _, a := range allResults {
		for _, b := range allResults {
			for _, c := range allResults {
				for _, d := range allResults {
					anyMatched := a == matched || b == matched || c == matched || d == matched
					anyNoMatch := a == noMatch || b == noMatch || c == noMatch || d == noMatch

					if got := foldOf(t, MatchAll, a, b, c, d); got != (anyMatched && !anyNoMatch) {
						t.Errorf("match_all fold(%v, %v, %v, %v) = %v", a, b, c, d, got)
					}
					if got := foldOf(t, MatchAny, a, b, c, d); got != anyMatched {
						t.Errorf("match_any fold(%v, %v, %v, %v) = %v", a, b, c, d, got)
					}
				}
			}
		}
	}
}

func TestFoldTriggers_EmptyNeverMatches(t *testing.T) {
	for _, mode := range []TriggerMatchMode{MatchAll, MatchAny} {
		if foldOf(t, mode) {
			t.Errorf("empty %v fold must not match", mode)
		}
	}
}

func TestFoldTriggers_UnknownMode(t *testing.T) {
	_, err := foldTriggers("match_some", func() (matchResult, error) { return matched, nil })
	if err == nil {
		t.Fatal("expected error for unknown trigger mode")
	}
}
