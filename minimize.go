package lexgen

import (
	"fmt"
	"strings"

	"github.com/projectdiscovery/gologger"
)

// Minimize returns an equivalent DFA with behaviourally identical
// states merged, via Moore partition refinement. The initial partition
// separates non-accepting states from accepting ones and splits the
// accepting states by action, so states with different actions are
// never fused. Two states stay in one group only while their outgoing
// interval keys are identical and every interval leads to the same
// group. Minimisation is idempotent and state 0 remains the start.
func (d *Dfa) Minimize() *Dfa {
	if len(d.states) == 0 {
		return &Dfa{}
	}

	type acceptKey struct {
		accept bool
		action string
	}

	group := make([]int, len(d.states))
	ids := make(map[acceptKey]int)
	for i, s := range d.states {
		k := acceptKey{accept: s.accept, action: s.action}
		id, ok := ids[k]
		if !ok {
			id = len(ids)
			ids[k] = id
		}
		group[i] = id
	}
	groupCount := len(ids)

	for {
		sigIDs := make(map[string]int)
		next := make([]int, len(d.states))

		for i, s := range d.states {
			var sig strings.Builder
			fmt.Fprintf(&sig, "%d;", group[i])
			for _, m := range s.Moves() {
				fmt.Fprintf(&sig, "%x:%x>%d;", m.On.First(), m.On.Last(), group[m.Target])
			}

			id, ok := sigIDs[sig.String()]
			if !ok {
				id = len(sigIDs)
				sigIDs[sig.String()] = id
			}
			next[i] = id
		}

		stable := len(sigIDs) == groupCount
		group = next
		groupCount = len(sigIDs)
		if stable {
			break
		}
	}

	// One state per group, ordered by lowest member so the group of
	// state 0 stays at index 0.
	repr := make(map[int]int)
	var order []int
	for i, g := range group {
		if _, ok := repr[g]; !ok {
			repr[g] = i
			order = append(order, g)
		}
	}
	newIndex := make(map[int]int, len(order))
	for k, g := range order {
		newIndex[g] = k
	}

	states := make([]*DfaState, len(order))
	for k, g := range order {
		old := d.states[repr[g]]
		s := &DfaState{
			moves:  make(map[Interval]int, len(old.moves)),
			action: old.action,
			accept: old.accept,
		}
		for on, target := range old.moves {
			s.moves[on] = newIndex[group[target]]
		}
		states[k] = s
	}

	gologger.Debug().Msgf("minimisation: %d DFA states -> %d", len(d.states), len(states))

	return &Dfa{states: states}
}
