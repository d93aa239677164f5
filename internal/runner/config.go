package runner

import (
	"os"
	"path/filepath"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lexgen"
	fileutil "github.com/projectdiscovery/utils/file"
)

// DefaultLexiconPath is used when no lexicon file is given on the
// command line.
var DefaultLexiconPath = filepath.Join(getUserHomeDir(), ".config/lexgen/lexicon.yaml")

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

func init() {
	// create the default sample lexicon if it does not exist
	if fileutil.FileExists(DefaultLexiconPath) {
		return
	}
	if err := validateDir(filepath.Dir(DefaultLexiconPath)); err != nil {
		gologger.Error().Msgf("lexgen config dir not found and failed to create got: %v", err)
		return
	}
	if err := lexgen.GenerateSample(DefaultLexiconPath); err != nil {
		gologger.Error().Msgf("failed to save default lexicon to %v got: %v", DefaultLexiconPath, err)
	}
}

// validateDir checks if dir exists if not creates it
func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}
