package runner

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	updateutils "github.com/projectdiscovery/utils/update"
)

type Options struct {
	Lexicon   string // lexicon yaml file with token definitions
	Output    string // generated lexer destination
	Package   string // package name override
	TokenType string // token type override
	Minimize  bool
	Sample    string // write a sample lexicon here and exit
	Verbose   bool
	Silent    bool

	DisableUpdateCheck bool
}

func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Table-driven longest-match lexer generator.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Lexicon, "lexicon", "l", "", "lexicon yaml file with token definitions (default '$HOME/.config/lexgen/lexicon.yaml')"),
		flagSet.StringVar(&opts.Sample, "sample", "", "write a sample lexicon file to the given path and exit"),
	)

	flagSet.CreateGroup("generate", "Generate",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file for the generated lexer (default stdout)"),
		flagSet.StringVarP(&opts.Package, "package", "pkg", "", "package name override for the generated file"),
		flagSet.StringVarP(&opts.TokenType, "token-type", "tt", "", "token type override for the generated lexer"),
		flagSet.BoolVarP(&opts.Minimize, "minimize", "m", false, "minimize the DFA before generating"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display lexgen version"),
	)

	flagSet.CreateGroup("update", "Update",
		flagSet.CallbackVarP(GetUpdateCallback(), "update", "up", "update lexgen to latest version"),
		flagSet.BoolVarP(&opts.DisableUpdateCheck, "disable-update-check", "duc", false, "disable automatic lexgen update check"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if !opts.DisableUpdateCheck {
		latestVersion, err := updateutils.GetVersionCheckCallback("lexgen")()
		if err != nil {
			if opts.Verbose {
				gologger.Error().Msgf("lexgen version check failed: %v", err.Error())
			}
		} else {
			gologger.Info().Msgf("Current lexgen version %v %v", version, updateutils.GetVersionDescription(version, latestVersion))
		}
	}

	if opts.Lexicon == "" {
		opts.Lexicon = DefaultLexiconPath
	}

	return opts
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
