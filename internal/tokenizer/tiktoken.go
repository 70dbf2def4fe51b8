// Package tokenizer provides the tiktoken-backed tokenizer capability used by
// the summarizer's neural path.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"khsumd/internal/registry"
)

// DefaultEncoding is used when the config does not name one.
const DefaultEncoding = "cl100k_base"

// specialTokens are filtered from decoded output when skipSpecial is set.
var specialTokens = []string{
	"<|endoftext|>",
	"<|fim_prefix|>",
	"<|fim_middle|>",
	"<|fim_suffix|>",
	"<|endofprompt|>",
}

// Tiktoken wraps a tiktoken encoding. Safe for concurrent use.
type Tiktoken struct {
	enc     *tiktoken.Tiktoken
	special map[int]struct{}
}

// Load opens the named encoding for an artifact directory. The directory must
// carry a recognized tokenizer config file; otherwise the load fails and the
// caller demotes to the extractive fallback.
func Load(arts registry.Artifacts, encoding string) (*Tiktoken, error) {
	if !arts.HasTokenizer() {
		return nil, fmt.Errorf("no tokenizer config in %q", arts.Dir)
	}
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("get encoding %s: %w", encoding, err)
	}
	// Resolve special-token ids once so Decode can drop them cheaply.
	special := make(map[int]struct{}, len(specialTokens))
	for _, st := range specialTokens {
		ids := enc.Encode(st, []string{"all"}, nil)
		if len(ids) == 1 {
			special[ids[0]] = struct{}{}
		}
	}
	return &Tiktoken{enc: enc, special: special}, nil
}

// Encode converts text to token ids.
func (t *Tiktoken) Encode(text string) ([]int, error) {
	return t.enc.Encode(text, nil, nil), nil
}

// Decode renders ids back to text, excluding special control tokens when
// skipSpecial is set.
func (t *Tiktoken) Decode(ids []int, skipSpecial bool) (string, error) {
	if skipSpecial && len(t.special) > 0 {
		kept := make([]int, 0, len(ids))
		for _, id := range ids {
			if _, ok := t.special[id]; ok {
				continue
			}
			kept = append(kept, id)
		}
		ids = kept
	}
	return t.enc.Decode(ids), nil
}
