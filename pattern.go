package lexgen

import (
	errorutil "github.com/projectdiscovery/utils/errors"
)

// Pattern is a structured regular pattern compiled into an NFA.
// Exactly one variant must be set per node:
//
//	literal: "int"              # the literal codepoint sequence
//	class: ["a-z", "A-Z", "_"]  # one codepoint out of the listed ranges
//	any: true                   # any codepoint
//	concat: [p1, p2, ...]       # p1 then p2 ...
//	union: [p1, p2, ...]        # p1 or p2 ...
//	star: p                     # zero or more p
//	plus: p                     # one or more p
//
// Patterns are plain data; there is no regular-expression syntax to
// parse. Class entries are either a single codepoint or a
// first-dash-last range like "a-z".
type Pattern struct {
	Literal string     `yaml:"literal,omitempty"`
	Class   []string   `yaml:"class,omitempty"`
	Any     bool       `yaml:"any,omitempty"`
	Concat  []*Pattern `yaml:"concat,omitempty"`
	Union   []*Pattern `yaml:"union,omitempty"`
	Star    *Pattern   `yaml:"star,omitempty"`
	Plus    *Pattern   `yaml:"plus,omitempty"`
}

func (p *Pattern) variants() int {
	count := 0
	if p.Literal != "" {
		count++
	}
	if len(p.Class) > 0 {
		count++
	}
	if p.Any {
		count++
	}
	if len(p.Concat) > 0 {
		count++
	}
	if len(p.Union) > 0 {
		count++
	}
	if p.Star != nil {
		count++
	}
	if p.Plus != nil {
		count++
	}
	return count
}

// Nfa compiles the pattern into an NFA.
func (p *Pattern) Nfa() (*Nfa, error) {
	if n := p.variants(); n != 1 {
		return nil, errorutil.New("pattern node must set exactly one variant, got %d", n)
	}

	switch {
	case p.Literal != "":
		nfa := NewEmpty()
		for _, r := range p.Literal {
			nfa.Concat(NewNfa(Single(r)))
		}
		return nfa, nil

	case len(p.Class) > 0:
		intervals, err := parseClass(p.Class)
		if err != nil {
			return nil, err
		}
		nfa := NewNfa(intervals[0])
		for _, on := range intervals[1:] {
			nfa.Union(NewNfa(on))
		}
		return nfa, nil

	case p.Any:
		return NewNfa(AnyInterval()), nil

	case len(p.Concat) > 0:
		nfa := NewEmpty()
		for _, sub := range p.Concat {
			part, err := sub.Nfa()
			if err != nil {
				return nil, err
			}
			nfa.Concat(part)
		}
		return nfa, nil

	case len(p.Union) > 0:
		var nfa *Nfa
		for _, sub := range p.Union {
			part, err := sub.Nfa()
			if err != nil {
				return nil, err
			}
			if nfa == nil {
				nfa = part
			} else {
				nfa.Union(part)
			}
		}
		return nfa, nil

	case p.Star != nil:
		nfa, err := p.Star.Nfa()
		if err != nil {
			return nil, err
		}
		nfa.Star()
		return nfa, nil

	default:
		nfa, err := p.Plus.Nfa()
		if err != nil {
			return nil, err
		}
		nfa.Positive()
		return nfa, nil
	}
}

// parseClass maps class entries to intervals. An entry is a single
// codepoint ("_") or a first-dash-last range ("a-z").
func parseClass(entries []string) ([]Interval, error) {
	intervals := make([]Interval, 0, len(entries))
	for _, entry := range entries {
		runes := []rune(entry)
		switch {
		case len(runes) == 1:
			intervals = append(intervals, Single(runes[0]))
		case len(runes) == 3 && runes[1] == '-':
			intervals = append(intervals, NewInterval(runes[0], runes[2]))
		default:
			return nil, errorutil.New("invalid class entry %q, expected a codepoint or a-z style range", entry)
		}
	}
	return intervals, nil
}
