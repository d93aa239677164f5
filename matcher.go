package lexgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrEndOfFile is returned by Matcher.Next once the input is exhausted
// with no match in progress.
var ErrEndOfFile = errors.New("end of file")

// NoMatchError is returned when an attempt records no checkpoint and
// either consumed input or stopped on a codepoint with no transition.
// Pos is the rune offset where the failed attempt started.
type NoMatchError struct {
	Pos int
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no token matches input at offset %d", e.Pos)
}

// Match is one longest-match result.
type Match struct {
	// Action is the accepting payload of the winning state.
	Action string
	// Text is the matched lexeme.
	Text string
	// Pos is the rune offset where the match starts.
	Pos int
}

// Matcher drives a compiled DFA over an input stream with the exact
// semantics of the emitted lexer: longest match wins, ties go to the
// pattern combined first, skipped matches restart scanning. It is the
// in-process counterpart of the generated code and what the end-to-end
// tests run against.
type Matcher struct {
	dfa  *Dfa
	in   *bufio.Reader
	buf  []rune
	pos  int
	err  error
	skip map[string]struct{}
}

// NewMatcher creates a matcher running dfa over r. Passing an empty DFA
// is a programmer error and panics.
func NewMatcher(dfa *Dfa, r io.Reader) *Matcher {
	if len(dfa.States()) == 0 {
		panic("lexgen: Matcher requires a non-empty DFA")
	}
	return &Matcher{
		dfa:  dfa,
		in:   bufio.NewReader(r),
		skip: make(map[string]struct{}),
	}
}

// Skip marks accepting actions as skip sentinels: a match carrying one
// of these actions restarts scanning at the new position instead of
// being returned.
func (m *Matcher) Skip(actions ...string) {
	for _, a := range actions {
		m.skip[a] = struct{}{}
	}
}

func (m *Matcher) peek() (rune, bool) {
	if m.pos < len(m.buf) {
		return m.buf[m.pos], true
	}
	if m.err != nil {
		return 0, false
	}
	r, _, err := m.in.ReadRune()
	if err != nil {
		m.err = err
		return 0, false
	}
	m.buf = append(m.buf, r)
	return r, true
}

// Next scans the next match. Each transition into an accepting state
// records a checkpoint; when the machine jams the input rewinds to the
// last checkpoint and that state's match is returned. With no
// checkpoint, Next returns NoMatchError if any input was consumed or a
// codepoint remains that no transition accepts, and ErrEndOfFile only
// if nothing was consumed and the input is exhausted. Errors from the
// underlying reader are forwarded.
func (m *Matcher) Next() (*Match, error) {
	states := m.dfa.States()

	for {
		state := 0
		start := m.pos
		checkpoint := -1
		accepting := -1

		for {
			r, ok := m.peek()
			if !ok {
				break
			}

			next := -1
			for _, mv := range states[state].Moves() {
				if mv.On.Contains(r) {
					if states[mv.Target].IsAccepting() {
						checkpoint, accepting = m.pos+1, mv.Target
					}
					next = mv.Target
					break
				}
			}
			if next < 0 {
				break
			}
			m.pos++
			state = next
		}

		if checkpoint >= 0 {
			m.pos = checkpoint
			action, _ := states[accepting].Accepting()
			if _, ok := m.skip[action]; ok {
				continue
			}
			return &Match{
				Action: action,
				Text:   string(m.buf[start:m.pos]),
				Pos:    start,
			}, nil
		}
		if m.err != nil && !errors.Is(m.err, io.EOF) {
			return nil, m.err
		}
		if _, ok := m.peek(); ok || m.pos > start {
			// either a codepoint nothing matches, or input ran out
			// mid-attempt
			return nil, &NoMatchError{Pos: start}
		}
		return nil, ErrEndOfFile
	}
}
