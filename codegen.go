package lexgen

import (
	"fmt"
	"io"
	"strings"
)

// CodeGen emits the source of a table-driven longest-match lexer for a
// DFA. The output is produced by plain placeholder substitution on a
// template; action payloads are spliced verbatim and never parsed.
type CodeGen struct {
	// Return type of the emitted NextToken method. Replaces
	// {{token_type}} in the template.
	tokenType string
	// Additional parameters for the emitted NextToken method, used to
	// pass extra state into action bodies.
	nextParams []string
	// Package name of the emitted file.
	packageName string
	template    string
}

// NewCodeGen creates a generator with the default template, emitting
// into package main with token type Token.
func NewCodeGen() *CodeGen {
	return &CodeGen{
		tokenType:   "Token",
		packageName: "main",
		template:    DefaultTemplate,
	}
}

// SetTokenType overrides the emitted token type.
func (c *CodeGen) SetTokenType(t string) {
	c.tokenType = t
}

// SetNextParams sets extra parameters forwarded into the emitted
// NextToken signature, each in "name type" form.
func (c *CodeGen) SetNextParams(params ...string) {
	c.nextParams = params
}

// SetPackageName overrides the package of the emitted file.
func (c *CodeGen) SetPackageName(name string) {
	c.packageName = name
}

// SetTemplate swaps the emitted source template. The template is
// treated as opaque text with the same named placeholders as
// DefaultTemplate.
func (c *CodeGen) SetTemplate(template string) {
	c.template = template
}

// Generate renders the lexer for dfa and writes the completed source to
// output in a single write. I/O errors are returned unmodified. Passing
// an empty DFA is a programmer error and panics.
func (c *CodeGen) Generate(dfa *Dfa, output io.Writer) error {
	if len(dfa.States()) == 0 {
		panic("lexgen: Generate requires a non-empty DFA")
	}

	code := Replace(c.template, map[string]interface{}{
		"package":                  c.packageName,
		"token_type":               c.tokenType,
		"next_params":              strings.Join(c.nextParams, ", "),
		"declare_states":           declareStates(dfa),
		"declare_accepting_states": declareAcceptingStates(dfa),
		"match_input":              generateMatcher(dfa),
		"match_accepting_state":    generateAcceptingMatcher(dfa),
	})

	_, err := io.WriteString(output, code)
	return err
}

// declareStates renders one symbolic constant per DFA state.
func declareStates(dfa *Dfa) string {
	var sb strings.Builder
	for i := range dfa.States() {
		fmt.Fprintf(&sb, "\n\tlexerState%d lexerState = %d", i, i)
	}
	return sb.String()
}

// declareAcceptingStates renders constants for the accepting states only.
func declareAcceptingStates(dfa *Dfa) string {
	var sb strings.Builder
	for i, s := range dfa.States() {
		if s.IsAccepting() {
			fmt.Fprintf(&sb, "\n\tacceptingState%d acceptingState = %d", i, i)
		}
	}
	return sb.String()
}

// generateMatcher renders the transition switch: one arm per DFA state
// dispatching on the incoming codepoint. Singleton intervals become
// equality cases, wider intervals inclusive range cases. Transitions
// into an accepting state record the checkpoint before advancing.
func generateMatcher(dfa *Dfa) string {
	states := dfa.States()

	var sb strings.Builder
	for i, s := range states {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "\t\t\tcase lexerState%d:\n", i)
		sb.WriteString("\t\t\t\tswitch {\n")

		for _, m := range s.Moves() {
			first := m.On.First()
			last := m.On.Last()

			if first == last {
				fmt.Fprintf(&sb, "\t\t\t\tcase r == %#x:\n", first)
			} else {
				fmt.Fprintf(&sb, "\t\t\t\tcase r >= %#x && r <= %#x:\n", first, last)
			}

			if states[m.Target].IsAccepting() {
				fmt.Fprintf(&sb, "\t\t\t\t\tcheckpoint, accepting = l.pos+1, acceptingState%d\n", m.Target)
			}
			fmt.Fprintf(&sb, "\t\t\t\t\tnext = lexerState%d\n", m.Target)
		}

		sb.WriteString("\t\t\t\t}")
	}
	return sb.String()
}

// generateAcceptingMatcher renders the action switch: one arm per
// accepting state with the action payload spliced verbatim.
func generateAcceptingMatcher(dfa *Dfa) string {
	var sb strings.Builder
	first := true
	for i, s := range dfa.States() {
		action, ok := s.Accepting()
		if !ok {
			continue
		}
		if !first {
			sb.WriteString("\n")
		}
		first = false
		fmt.Fprintf(&sb, "\t\t\tcase acceptingState%d:\n", i)
		sb.WriteString(action)
	}
	return sb.String()
}
