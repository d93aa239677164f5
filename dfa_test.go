package lexgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// dfaAccepts walks the DFA over the whole input and returns the
// accepting action of the final state, if any.
func dfaAccepts(d *Dfa, input string) (string, bool) {
	states := d.States()
	cur := 0

	for _, r := range input {
		next := -1
		for _, m := range states[cur].Moves() {
			if m.On.Contains(r) {
				next = m.Target
				break
			}
		}
		if next < 0 {
			return "", false
		}
		cur = next
	}
	return states[cur].Accepting()
}

// buildSimpleNfa is the (a|b)*abb plus abc automaton, abc combined last.
func buildSimpleNfa() *Nfa {
	nfa := NewNfa(Single('a'))
	nfa.Union(NewNfa(Single('b')))
	nfa.Star()
	nfa.Concat(NewNfa(Single('a')))
	nfa.Concat(NewNfa(Single('b')))
	nfa.Concat(NewNfa(Single('b')))
	nfa.Concat(NewAccepting("got (a|b)*abb"))

	other := NewNfa(Single('a'))
	other.Concat(NewNfa(Single('b')))
	other.Concat(NewNfa(Single('c')))
	other.Concat(NewAccepting("got abc"))

	nfa.Combine(other)
	return nfa
}

// requireDfaInvariants checks determinism: per state, interval keys are
// pairwise disjoint and every target is in range.
func requireDfaInvariants(t *testing.T, d *Dfa) {
	t.Helper()

	for i, s := range d.States() {
		moves := s.Moves()
		for j := 0; j < len(moves); j++ {
			require.Less(t, moves[j].Target, len(d.States()), "state %d", i)
			require.GreaterOrEqual(t, moves[j].Target, 0, "state %d", i)
			for k := j + 1; k < len(moves); k++ {
				require.False(t, moves[j].On.Intersects(moves[k].On),
					"state %d: %s intersects %s", i, moves[j].On, moves[k].On)
			}
		}
	}
}

func TestDfaEquivalence(t *testing.T) {
	nfa := buildSimpleNfa()
	dfa := FromNfa(nfa)

	requireDfaInvariants(t, dfa)

	for _, s := range allStrings("abc", 5) {
		nfaAction, nfaOk := nfaAccepts(nfa, s)
		dfaAction, dfaOk := dfaAccepts(dfa, s)
		require.Equal(t, nfaOk, dfaOk, "input %q", s)
		require.Equal(t, nfaAction, dfaAction, "input %q", s)
	}
}

func TestDfaAcceptsExpectedStrings(t *testing.T) {
	dfa := FromNfa(buildSimpleNfa())

	tests := map[string]string{
		"abb":    "got (a|b)*abb",
		"aabb":   "got (a|b)*abb",
		"babb":   "got (a|b)*abb",
		"bababb": "got (a|b)*abb",
		"abc":    "got abc",
	}
	for input, action := range tests {
		got, ok := dfaAccepts(dfa, input)
		require.True(t, ok, "input %q", input)
		require.Equal(t, action, got, "input %q", input)
	}

	for _, input := range []string{"", "a", "ab", "abca", "cab", "bba"} {
		_, ok := dfaAccepts(dfa, input)
		require.False(t, ok, "input %q", input)
	}
}

func TestDfaOverlappingIntervals(t *testing.T) {
	// four patterns over overlapping classes, combined in priority
	// order bd, ae, cz, az
	class := func(first, last rune, action string) *Nfa {
		nfa := NewNfa(NewInterval(first, last))
		nfa.Positive()
		nfa.Concat(NewAccepting(action))
		return nfa
	}

	nfa := class('b', 'd', "Bd")
	nfa.Combine(class('a', 'e', "Ae"))
	nfa.Combine(class('c', 'z', "Cz"))
	nfa.Combine(class('a', 'z', "Az"))

	dfa := FromNfa(nfa)
	requireDfaInvariants(t, dfa)

	tests := map[string]string{
		"bcd":    "Bd",
		"abc":    "Ae",
		"cde":    "Ae",
		"xyz":    "Cz",
		"azerty": "Az",
	}
	for input, action := range tests {
		got, ok := dfaAccepts(dfa, input)
		require.True(t, ok, "input %q", input)
		require.Equal(t, action, got, "input %q", input)
	}
}

func TestDfaPriorityLowestIndexWins(t *testing.T) {
	// keyword combined before the identifier pattern wins the tie
	nfa := literalNfa("int", "kw_int")

	ident := NewNfa(NewInterval('a', 'z'))
	ident.Positive()
	ident.Concat(NewAccepting("ident"))
	nfa.Combine(ident)

	dfa := FromNfa(nfa)

	action, ok := dfaAccepts(dfa, "int")
	require.True(t, ok)
	require.Equal(t, "kw_int", action)

	action, ok = dfaAccepts(dfa, "integer")
	require.True(t, ok)
	require.Equal(t, "ident", action)
}

func TestDisjointify(t *testing.T) {
	iv := func(first, last rune) Interval { return NewInterval(first, last) }

	sources := []Move{
		{On: iv(0, 5), States: []int{1}},
		{On: iv(2, 8), States: []int{2}},
		{On: iv(4, 10), States: []int{3}},
		{On: iv(7, 9), States: []int{4}},
	}
	moves := disjointify([]Move{
		{On: sources[0].On, States: sources[0].States},
		{On: sources[1].On, States: sources[1].States},
		{On: sources[2].On, States: sources[2].States},
		{On: sources[3].On, States: sources[3].States},
	})

	// pairwise disjoint
	for i := 0; i < len(moves); i++ {
		for j := i + 1; j < len(moves); j++ {
			require.False(t, moves[i].On.Intersects(moves[j].On),
				"%s intersects %s", moves[i].On, moves[j].On)
		}
	}

	// every covered codepoint keeps the union of the original target
	// sets covering it
	for c := rune(0); c <= 12; c++ {
		var want []int
		for _, src := range sources {
			if src.On.Contains(c) {
				want = mergeStateSets(want, src.States)
			}
		}

		var got []int
		covering := 0
		for _, m := range moves {
			if m.On.Contains(c) {
				covering++
				got = m.States
			}
		}

		if len(want) == 0 {
			require.Zero(t, covering, "codepoint %d", c)
			continue
		}
		require.Equal(t, 1, covering, "codepoint %d", c)
		require.Equal(t, want, got, "codepoint %d", c)
	}
}

func TestDisjointifyDisjointInputUnchanged(t *testing.T) {
	moves := disjointify([]Move{
		{On: NewInterval('x', 'z'), States: []int{2}},
		{On: NewInterval('a', 'c'), States: []int{1}},
	})
	require.Equal(t, []Move{
		{On: NewInterval('a', 'c'), States: []int{1}},
		{On: NewInterval('x', 'z'), States: []int{2}},
	}, moves)
}

func TestMinimizeEquivalence(t *testing.T) {
	nfa := buildSimpleNfa()
	dfa := FromNfa(nfa)
	minimized := dfa.Minimize()

	requireDfaInvariants(t, minimized)
	require.LessOrEqual(t, len(minimized.States()), len(dfa.States()))

	for _, s := range allStrings("abc", 5) {
		wantAction, wantOk := dfaAccepts(dfa, s)
		gotAction, gotOk := dfaAccepts(minimized, s)
		require.Equal(t, wantOk, gotOk, "input %q", s)
		require.Equal(t, wantAction, gotAction, "input %q", s)
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	dfa := FromNfa(buildSimpleNfa())

	once := dfa.Minimize()
	twice := once.Minimize()

	require.Equal(t, len(once.States()), len(twice.States()))
	require.Equal(t, once.String(), twice.String())
}

func TestMinimizeKeepsDistinctActions(t *testing.T) {
	// two accepting states with different payloads must not be fused
	// even though both are accepting dead ends
	nfa := literalNfa("a", "A")
	nfa.Combine(literalNfa("b", "B"))

	minimized := FromNfa(nfa).Minimize()

	action, ok := dfaAccepts(minimized, "a")
	require.True(t, ok)
	require.Equal(t, "A", action)

	action, ok = dfaAccepts(minimized, "b")
	require.True(t, ok)
	require.Equal(t, "B", action)
}

func TestMinimizeMergesEquivalentStates(t *testing.T) {
	// a|b as two single-rune branches: the branch-end states are
	// behaviourally identical and collapse
	nfa := NewNfa(Single('a'))
	nfa.Union(NewNfa(Single('b')))
	nfa.Concat(NewAccepting("ab"))

	dfa := FromNfa(nfa)
	minimized := dfa.Minimize()
	require.Less(t, len(minimized.States()), len(dfa.States()))

	for _, s := range allStrings("ab", 2) {
		wantAction, wantOk := dfaAccepts(dfa, s)
		gotAction, gotOk := dfaAccepts(minimized, s)
		require.Equal(t, wantOk, gotOk, "input %q", s)
		require.Equal(t, wantAction, gotAction, "input %q", s)
	}
}

func TestDfaString(t *testing.T) {
	nfa := NewNfa(Single('a'))
	nfa.Concat(NewAccepting("done"))
	dfa := FromNfa(nfa)

	out := dfa.String()
	require.Contains(t, out, "(0):\n")
	require.Contains(t, out, "  [a] -> 1\n")
	require.Contains(t, out, "((1)) `done`:\n")
}
