package lexgen

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/projectdiscovery/gologger"
)

// DfaMove is one outgoing DFA transition.
type DfaMove struct {
	On     Interval
	Target int
}

// DfaState is a deterministic state: its outgoing intervals are
// pairwise disjoint, so at most one transition fires per codepoint.
type DfaState struct {
	moves  map[Interval]int
	action string
	accept bool
}

func newDfaState(nfa *Nfa, nfaStates []int) *DfaState {
	s := &DfaState{moves: make(map[Interval]int)}

	// The lowest-index accepting NFA state wins: Combine appends, so
	// this makes the pattern combined first take precedence when a
	// subset holds several accepting states.
	for _, n := range nfaStates {
		if action, ok := nfa.Accepting(n); ok {
			s.action = action
			s.accept = true
			break
		}
	}
	return s
}

func (s *DfaState) setMove(on Interval, target int) {
	s.moves[on] = target
}

// Moves returns the state's transitions ordered by interval.
func (s *DfaState) Moves() []DfaMove {
	moves := make([]DfaMove, 0, len(s.moves))
	for on, target := range s.moves {
		moves = append(moves, DfaMove{On: on, Target: target})
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].On.Less(moves[j].On) })
	return moves
}

// HasMoves returns true if the state has at least one transition.
func (s *DfaState) HasMoves() bool {
	return len(s.moves) > 0
}

// IsAccepting returns true if the state accepts.
func (s *DfaState) IsAccepting() bool {
	return s.accept
}

// Accepting returns the state's accepting action.
func (s *DfaState) Accepting() (string, bool) {
	return s.action, s.accept
}

// Dfa is a deterministic finite automaton over codepoint intervals.
// State 0 is the start state.
type Dfa struct {
	states []*DfaState
}

// dstate pairs a DFA state under construction with the NFA subset it
// represents.
type dstate struct {
	nfaStates []int
	state     *DfaState
}

// FromNfa builds a DFA accepting the same language as the NFA via
// subset construction. Overlapping interval transitions coming from
// different NFA states are split into a pairwise-disjoint cover first,
// so the result is deterministic per codepoint. The DFA can have an
// exponential number of states in the worst case.
func FromNfa(nfa *Nfa) *Dfa {
	newDState := func(nfaStates []int) dstate {
		nfaStates = sortDedupe(nfaStates)
		return dstate{
			nfaStates: nfaStates,
			state:     newDfaState(nfa, nfaStates),
		}
	}

	// Start from the ε-closure of the NFA entry and expand until no
	// unprocessed subset remains.
	dstates := []dstate{newDState(nfa.EpsilonClosure([]int{0}))}

	for cur := 0; cur < len(dstates); cur++ {
		moves := disjointify(nfa.GetMoveSet(dstates[cur].nfaStates))

		for _, m := range moves {
			target := -1
			for i := range dstates {
				if slices.Equal(dstates[i].nfaStates, m.States) {
					target = i
					break
				}
			}
			if target < 0 {
				dstates = append(dstates, newDState(m.States))
				target = len(dstates) - 1
			}

			dstates[cur].state.setMove(m.On, target)
		}
	}

	states := make([]*DfaState, len(dstates))
	for i := range dstates {
		states[i] = dstates[i].state
	}

	gologger.Debug().Msgf("subset construction: %d NFA states -> %d DFA states", nfa.Len(), len(states))

	return &Dfa{states: states}
}

// disjointify splits overlapping interval keys until the move set is a
// pairwise-disjoint cover. Each overlapping pair is replaced by up to
// three entries: the exclusive left part keeps the smaller-starting
// operand's targets, the overlap takes the union and the right tail
// keeps the targets of whichever operand extends furthest. Every split
// strictly refines a finite partition, so a fixed point is reached.
func disjointify(moves []Move) []Move {
	for {
		i, j := findIntersecting(moves)
		if i < 0 {
			break
		}

		a, b := moves[i], moves[j]
		if b.On.Less(a.On) {
			a, b = b, a
		}

		moves = append(moves[:j], moves[j+1:]...)
		moves = append(moves[:i], moves[i+1:]...)

		left, middle, right := a.On.Intersect(b.On)
		if left != nil {
			moves = insertMove(moves, Move{On: *left, States: a.States})
		}
		if middle != nil {
			moves = insertMove(moves, Move{On: *middle, States: mergeStateSets(a.States, b.States)})
		}
		if right != nil {
			longer := a
			if b.On.Last() > a.On.Last() {
				longer = b
			}
			moves = insertMove(moves, Move{On: *right, States: longer.States})
		}
	}

	sort.Slice(moves, func(i, j int) bool { return moves[i].On.Less(moves[j].On) })
	return moves
}

// findIntersecting returns the positions of some pair of intersecting
// intervals, or (-1, -1) if the set is already disjoint.
func findIntersecting(moves []Move) (int, int) {
	for i := 0; i < len(moves); i++ {
		for j := i + 1; j < len(moves); j++ {
			if moves[i].On.Intersects(moves[j].On) {
				return i, j
			}
		}
	}
	return -1, -1
}

// insertMove adds a move, merging target sets if the exact interval is
// already present.
func insertMove(moves []Move, m Move) []Move {
	for i := range moves {
		if moves[i].On.Compare(m.On) == 0 {
			moves[i].States = mergeStateSets(moves[i].States, m.States)
			return moves
		}
	}
	return append(moves, m)
}

// States returns the DFA's states. State 0 is the start state.
func (d *Dfa) States() []*DfaState {
	return d.states
}

// String renders the automaton state by state in the same form as
// Nfa.String.
func (d *Dfa) String() string {
	var sb strings.Builder
	for i, s := range d.states {
		if s.accept {
			fmt.Fprintf(&sb, "((%d)) `%s`:\n", i, s.action)
		} else {
			fmt.Fprintf(&sb, "(%d):\n", i)
		}
		for _, m := range s.Moves() {
			fmt.Fprintf(&sb, "  %s -> %d\n", m.On, m.Target)
		}
	}
	return sb.String()
}
