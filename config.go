package lexgen

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	errorutil "github.com/projectdiscovery/utils/errors"
	yamlv3 "gopkg.in/yaml.v3"
)

// TokenDef declares one token of a lexicon: a pattern plus the action
// body spliced into the emitted matcher when the token wins. Tokens
// earlier in the lexicon take precedence when a lexeme is accepted by
// several patterns at the same length.
type TokenDef struct {
	Name    string   `yaml:"name"`
	Action  string   `yaml:"action,omitempty"`
	Skip    bool     `yaml:"skip,omitempty"`
	Pattern *Pattern `yaml:"pattern"`
}

// action returns the payload spliced into the accepting state: the
// verbatim action body if given, a skip for skip tokens and a token
// carrying the definition name otherwise.
func (t *TokenDef) action() string {
	if t.Action != "" {
		return t.Action
	}
	if t.Skip {
		return "skip = true"
	}
	return fmt.Sprintf("token = %q", t.Name)
}

// Config is a lexicon: token definitions plus codegen settings.
type Config struct {
	Package    string      `yaml:"package,omitempty"`
	TokenType  string      `yaml:"token_type,omitempty"`
	NextParams []string    `yaml:"next_params,omitempty"`
	Minimize   bool        `yaml:"minimize,omitempty"`
	Tokens     []*TokenDef `yaml:"tokens"`
}

// DefaultConfig is the sample lexicon written by GenerateSample.
var DefaultConfig = Config{
	Package:   "main",
	TokenType: "string",
	Tokens: []*TokenDef{
		{
			Name:   "ident",
			Action: "token = lexeme",
			Pattern: &Pattern{Concat: []*Pattern{
				{Class: []string{"a-z", "A-Z", "_"}},
				{Star: &Pattern{Class: []string{"a-z", "A-Z", "0-9", "_"}}},
			}},
		},
		{
			Name:    "number",
			Action:  "token = lexeme",
			Pattern: &Pattern{Plus: &Pattern{Class: []string{"0-9"}}},
		},
		{
			Name:    "space",
			Skip:    true,
			Pattern: &Pattern{Plus: &Pattern{Class: []string{" ", "\t", "\n"}}},
		},
	},
}

// NewConfig reads a lexicon from file
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err = yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, errorutil.New("invalid lexicon %v:\n%v", filePath, yaml.FormatError(err, false, true))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the lexicon and fills defaults.
func (c *Config) Validate() error {
	if len(c.Tokens) == 0 {
		return errorutil.New("lexicon has no token definitions")
	}
	for i, t := range c.Tokens {
		if t.Name == "" {
			return errorutil.New("token %d has no name", i)
		}
		if t.Pattern == nil {
			return errorutil.New("token %v has no pattern", t.Name)
		}
	}
	if c.Package == "" {
		c.Package = "main"
	}
	if c.TokenType == "" {
		c.TokenType = "string"
	}
	return nil
}

// Nfa builds the combined automaton of all token definitions, combined
// in declaration order so earlier tokens take precedence.
func (c *Config) Nfa() (*Nfa, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var combined *Nfa
	for _, t := range c.Tokens {
		nfa, err := t.Pattern.Nfa()
		if err != nil {
			return nil, errorutil.New("token %v: %v", t.Name, err)
		}
		nfa.Concat(NewAccepting(t.action()))

		if combined == nil {
			combined = nfa
		} else {
			combined.Combine(nfa)
		}
	}
	return combined, nil
}

// Compile builds the lexicon's DFA, minimised when requested.
func (c *Config) Compile() (*Dfa, error) {
	nfa, err := c.Nfa()
	if err != nil {
		return nil, err
	}
	dfa := FromNfa(nfa)
	if c.Minimize {
		dfa = dfa.Minimize()
	}
	return dfa, nil
}

// Generate compiles the lexicon and writes the emitted lexer source to
// output.
func (c *Config) Generate(output io.Writer) error {
	dfa, err := c.Compile()
	if err != nil {
		return err
	}

	gen := NewCodeGen()
	gen.SetPackageName(c.Package)
	gen.SetTokenType(c.TokenType)
	gen.SetNextParams(c.NextParams...)
	return gen.Generate(dfa, output)
}

// GenerateSample creates a sample yaml lexicon with default values
func GenerateSample(filePath string) error {
	bin, err := yamlv3.Marshal(DefaultConfig)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}
