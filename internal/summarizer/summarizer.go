package summarizer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"khsumd/internal/registry"
	"khsumd/pkg/types"
)

// State is the facade's generation capability, fixed at construction.
type State string

const (
	// StateNeuralReady means the model loaded; requests try the abstractive
	// path first (when the tokenizer is also present).
	StateNeuralReady State = "neural_ready"
	// StateFallbackOnly means every request takes the extractive path.
	StateFallbackOnly State = "fallback_only"
)

// Device selects the compute backend for generation.
type Device string

const (
	DeviceCPU         Device = "cpu"
	DeviceAccelerator Device = "accelerator"
)

// ResolveDevice maps a configured device name onto a backend. "auto" picks
// the accelerator when this build carries GPU offload and the CPU otherwise.
// The second return is false for names outside auto|cpu|gpu|accelerator.
func ResolveDevice(name string) (Device, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cpu":
		return DeviceCPU, true
	case "gpu", "accelerator":
		return DeviceAccelerator, true
	case "auto":
		if acceleratorAvailable {
			return DeviceAccelerator, true
		}
		return DeviceCPU, true
	}
	return DeviceCPU, false
}

// Defaults applied when a request or config leaves a value unset.
const (
	DefaultMaxLength      = 150
	DefaultMinLength      = 50
	DefaultMaxInputTokens = 1024
)

// Generation settings fixed by the service contract.
const (
	numBeams          = 4
	lengthPenalty     = 2.0
	noRepeatNGramSize = 3
)

// Config holds construction parameters for the Summarizer.
type Config struct {
	ModelDir       string
	Device         Device
	Threads        int
	CtxSize        int
	MaxInputTokens int

	// LoadTokenizer opens the tokenizer for the probed artifacts. Nil skips
	// the tokenizer load entirely.
	LoadTokenizer func(arts registry.Artifacts) (Tokenizer, error)
	// OpenGenerator opens the generation runtime. Nil selects the built-in
	// llama adapter (or its fail-fast stub without the 'llama' tag).
	OpenGenerator func(cfg GeneratorConfig) (Generator, error)
}

// Summarizer routes requests to the neural path when available and guarantees
// a bounded extractive result otherwise. It is read-only after construction
// and safe for concurrent use: extractive requests run in parallel, while
// generation is serialized to a single in-flight call on the shared runtime.
type Summarizer struct {
	state          State
	device         Device
	tok            Tokenizer
	genMu          sync.Mutex
	gen            Generator
	artifacts      registry.Artifacts
	modelDir       string
	maxInputTokens int
	start          time.Time
	log            zerolog.Logger
}

// New probes the artifact directory and attempts the tokenizer and model
// loads independently. Every load failure is logged and demotes the facade to
// StateFallbackOnly; none propagates.
func New(cfg Config, log zerolog.Logger) *Summarizer {
	s := &Summarizer{
		state:          StateFallbackOnly,
		device:         cfg.Device,
		modelDir:       cfg.ModelDir,
		maxInputTokens: cfg.MaxInputTokens,
		start:          time.Now(),
		log:            log,
	}
	if s.device == "" {
		s.device = DeviceCPU
	}
	if s.maxInputTokens <= 0 {
		s.maxInputTokens = DefaultMaxInputTokens
	}

	arts, err := registry.Probe(cfg.ModelDir)
	if err != nil {
		log.Warn().Err(err).Str("model_dir", cfg.ModelDir).
			Msg("artifact probe failed, using extractive fallback")
		return s
	}
	s.artifacts = arts

	// Tokenizer and model load independently; either may be present alone.
	if cfg.LoadTokenizer != nil {
		if tok, err := cfg.LoadTokenizer(arts); err != nil {
			log.Warn().Err(errLoad("tokenizer", err)).Msg("tokenizer unavailable")
		} else {
			s.tok = tok
			log.Info().Str("file", arts.TokenizerFile).Msg("tokenizer loaded")
		}
	}

	if !arts.HasWeights() {
		log.Info().Str("model_dir", cfg.ModelDir).
			Msg("model weights not found, using extractive fallback")
		return s
	}
	open := cfg.OpenGenerator
	if open == nil {
		open = openDefaultGenerator
	}
	gen, err := open(GeneratorConfig{
		ModelPath: arts.WeightPath(),
		Device:    s.device,
		Threads:   cfg.Threads,
		CtxSize:   cfg.CtxSize,
		Tokenizer: s.tok,
	})
	if err != nil {
		log.Warn().Err(errLoad("model", err)).Msg("model unavailable, using extractive fallback")
		return s
	}
	s.gen = gen
	s.state = StateNeuralReady
	log.Info().Str("weights", arts.WeightFile).Str("device", string(s.device)).Msg("model loaded")
	return s
}

// Summarize returns a summary of text bounded by maxLength. It never returns
// an error: any neural-path failure is logged and falls through to the
// extractive path exactly once. The extractive path does not enforce
// minLength.
func (s *Summarizer) Summarize(ctx context.Context, text string, maxLength, minLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	// Generation needs both capabilities; a tokenizer alone (or a model
	// alone) behaves the same as neither.
	if s.state == StateNeuralReady && s.tok != nil {
		out, err := s.generate(ctx, text, maxLength, minLength)
		if err == nil {
			summariesTotal.WithLabelValues("neural").Inc()
			return out
		}
		generationFallbacksTotal.Inc()
		s.log.Warn().Err(err).Msg("generation failed, using extractive fallback")
	}
	summariesTotal.WithLabelValues("extractive").Inc()
	return ExtractiveSummarize(text, maxLength)
}

func (s *Summarizer) generate(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	ids, err := s.tok.Encode(text)
	if err != nil {
		return "", err
	}
	// Hard input cap: lossy but deterministic.
	if len(ids) > s.maxInputTokens {
		ids = ids[:s.maxInputTokens]
	}
	// One generation at a time: the runtime holds a single model handle.
	s.genMu.Lock()
	defer s.genMu.Unlock()
	out, err := s.gen.Generate(ctx, ids, GenerateParams{
		MinTokens:         minLength,
		MaxTokens:         maxLength,
		NumBeams:          numBeams,
		LengthPenalty:     lengthPenalty,
		EarlyStopping:     true,
		NoRepeatNGramSize: noRepeatNGramSize,
	})
	if err != nil {
		return "", err
	}
	return s.tok.Decode(out, true)
}

// IsNeuralReady reports whether the neural model loaded.
func (s *Summarizer) IsNeuralReady() bool { return s.state == StateNeuralReady }

// TokenizerLoaded reports whether the tokenizer loaded.
func (s *Summarizer) TokenizerLoaded() bool { return s.tok != nil }

// Close releases the generation runtime, if any. It waits for an in-flight
// generation to finish.
func (s *Summarizer) Close() error {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.gen != nil {
		return s.gen.Close()
	}
	return nil
}

// Status builds the response for GET /status.
func (s *Summarizer) Status() types.StatusResponse {
	now := time.Now()
	return types.StatusResponse{
		State:           string(s.state),
		Device:          string(s.device),
		ModelDir:        s.modelDir,
		WeightFile:      s.artifacts.WeightFile,
		ModelLoaded:     s.IsNeuralReady(),
		TokenizerLoaded: s.TokenizerLoaded(),
		UptimeSeconds:   int64(now.Sub(s.start).Seconds()),
		ServerTimeUnix:  now.Unix(),
	}
}
