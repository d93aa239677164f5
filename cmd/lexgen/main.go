package main

import (
	"io"
	"os"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lexgen"
	"github.com/projectdiscovery/lexgen/internal/runner"
)

func main() {
	opts := runner.ParseFlags()

	if opts.Sample != "" {
		if err := lexgen.GenerateSample(opts.Sample); err != nil {
			gologger.Fatal().Msgf("failed to write sample lexicon: %v", err)
		}
		gologger.Info().Msgf("Saved sample lexicon to %s", opts.Sample)
		return
	}

	cfg, err := lexgen.NewConfig(opts.Lexicon)
	if err != nil {
		gologger.Fatal().Msgf("failed to read %v file got: %v", opts.Lexicon, err)
	}

	// command line overrides
	if opts.Package != "" {
		cfg.Package = opts.Package
	}
	if opts.TokenType != "" {
		cfg.TokenType = opts.TokenType
	}
	if opts.Minimize {
		cfg.Minimize = true
	}

	dfa, err := cfg.Compile()
	if err != nil {
		gologger.Fatal().Msgf("failed to compile lexicon: %v", err)
	}
	gologger.Info().Msgf("Compiled %d token definitions into %d DFA states", len(cfg.Tokens), len(dfa.States()))
	gologger.Verbose().Msgf("DFA:\n%s", dfa)

	output := getOutputWriter(opts.Output)
	defer closeOutput(output, opts.Output)

	gen := lexgen.NewCodeGen()
	gen.SetPackageName(cfg.Package)
	gen.SetTokenType(cfg.TokenType)
	gen.SetNextParams(cfg.NextParams...)

	if err := gen.Generate(dfa, output); err != nil {
		gologger.Fatal().Msgf("failed to write generated lexer: %v", err)
	}
	if opts.Output != "" {
		gologger.Info().Msgf("Saved generated lexer to %s", opts.Output)
	}
}

func getOutputWriter(path string) io.Writer {
	if path == "" {
		return os.Stdout
	}
	f, err := os.Create(path)
	if err != nil {
		gologger.Fatal().Msgf("failed to create %v got: %v", path, err)
	}
	return f
}

func closeOutput(w io.Writer, path string) {
	if path == "" {
		return
	}
	if c, ok := w.(io.Closer); ok {
		c.Close()
	}
}
