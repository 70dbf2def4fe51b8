package summarizer

import "context"

// Tokenizer converts between text and token ids. Implementations must be safe
// for concurrent use.
type Tokenizer interface {
	// Encode converts text to token ids.
	Encode(text string) ([]int, error)
	// Decode renders ids back to text. When skipSpecial is true, control
	// tokens are excluded from the output.
	Decode(ids []int, skipSpecial bool) (string, error)
}

// Generator abstracts the neural generation runtime used by the Summarizer.
// Implementations must return when the context is canceled. The Summarizer
// keeps at most one Generate call in flight, so implementations need not be
// safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, inputIDs []int, params GenerateParams) ([]int, error)
	// Close releases any resources held by the runtime.
	Close() error
}

// GenerateParams captures the generation settings passed to the runtime.
// Runtimes map the subset they expose.
type GenerateParams struct {
	MinTokens         int
	MaxTokens         int
	NumBeams          int
	LengthPenalty     float64
	EarlyStopping     bool
	NoRepeatNGramSize int
}

// GeneratorConfig holds runtime options applied when the model is opened.
type GeneratorConfig struct {
	ModelPath string
	Device    Device
	Threads   int
	CtxSize   int
	// Tokenizer bridges runtimes that operate on text rather than ids.
	Tokenizer Tokenizer
}
