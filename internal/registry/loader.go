package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"khsumd/internal/common/fsutil"
)

// weightFiles are the recognized model weight filenames. Presence of any one
// of them marks the artifact directory as holding loadable weights.
var weightFiles = []string{
	"pytorch_model.bin",
	"model.safetensors",
	"tf_model.h5",
	"model.gguf",
}

// tokenizerFiles are the recognized tokenizer configuration filenames.
var tokenizerFiles = []string{
	"tokenizer.json",
	"tokenizer_config.json",
	"sentencepiece.bpe.model",
}

// Artifacts describes what was found in a model artifact directory.
// A directory with no weights is a normal outcome (the service falls back to
// extractive summarization), not an error.
type Artifacts struct {
	Dir           string // absolute path, empty when the directory is absent
	WeightFile    string // first recognized weight filename, empty when none
	TokenizerFile string // first recognized tokenizer filename, empty when none
}

// HasWeights reports whether a recognized weight file was found.
func (a Artifacts) HasWeights() bool { return a.WeightFile != "" }

// HasTokenizer reports whether a recognized tokenizer config was found.
func (a Artifacts) HasTokenizer() bool { return a.TokenizerFile != "" }

// WeightPath returns the absolute path to the weight file, or empty.
func (a Artifacts) WeightPath() string {
	if a.WeightFile == "" {
		return ""
	}
	return filepath.Join(a.Dir, a.WeightFile)
}

// Probe scans a model artifact directory for recognized weight and tokenizer
// files. A missing directory yields zero Artifacts and no error; only an
// unreadable path errors.
func Probe(dir string) (Artifacts, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return Artifacts{}, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return Artifacts{}, fmt.Errorf("abs path: %w", err)
	}
	if !fsutil.PathExists(abs) {
		return Artifacts{}, nil
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return Artifacts{}, fmt.Errorf("read dir: %w", err)
	}
	a := Artifacts{Dir: abs}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if a.WeightFile == "" && isWeightFile(name) {
			a.WeightFile = name
		}
		if a.TokenizerFile == "" && isTokenizerFile(name) {
			a.TokenizerFile = name
		}
	}
	return a, nil
}

func isWeightFile(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range weightFiles {
		if lower == w {
			return true
		}
	}
	// Any .gguf file counts as weights for the in-process runtime.
	return strings.HasSuffix(lower, ".gguf")
}

func isTokenizerFile(name string) bool {
	lower := strings.ToLower(name)
	for _, t := range tokenizerFiles {
		if lower == t {
			return true
		}
	}
	return false
}
