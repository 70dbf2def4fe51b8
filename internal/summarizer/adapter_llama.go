//go:build llama

package summarizer

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// This build can offload layers to a GPU.
const acceleratorAvailable = true

// llamaGenerator runs generation in-process via go-llama.cpp.
type llamaGenerator struct {
	model   *llama.LLama
	tok     Tokenizer
	threads int
}

func openDefaultGenerator(cfg GeneratorConfig) (Generator, error) {
	if strings.TrimSpace(cfg.ModelPath) == "" {
		return nil, errors.New("model path is empty")
	}
	if cfg.Tokenizer == nil {
		return nil, errors.New("tokenizer required to bridge the llama runtime")
	}
	mo := []llama.ModelOption{
		llama.SetContext(zn(cfg.CtxSize, 2048)),
	}
	if cfg.Device == DeviceAccelerator {
		mo = append(mo, llama.SetGPULayers(99))
	}
	m, err := llama.New(cfg.ModelPath, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaGenerator{model: m, tok: cfg.Tokenizer, threads: zn(cfg.Threads, 4)}, nil
}

// Generate decodes the input ids to a prompt, runs prediction, and re-encodes
// the output. Only the parameter subset the runtime exposes is mapped: token
// bound and threads directly, the no-repeat constraint onto the repeat
// penalty. Beam width and length penalty have no equivalent here.
func (g *llamaGenerator) Generate(ctx context.Context, inputIDs []int, params GenerateParams) ([]int, error) {
	if g.model == nil {
		return nil, errors.New("llama model not initialized")
	}
	prompt, err := g.tok.Decode(inputIDs, false)
	if err != nil {
		return nil, err
	}
	// Stop token streaming when the context is canceled.
	g.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	})
	po := []llama.PredictOption{
		llama.SetTokens(zn(params.MaxTokens, DefaultMaxLength)),
		llama.SetThreads(g.threads),
		llama.SetTemperature(0),
	}
	if params.NoRepeatNGramSize > 0 {
		po = append(po, llama.SetPenalty(1.1))
	}
	text, err := g.model.Predict(prompt, po...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return g.tok.Encode(text)
}

func (g *llamaGenerator) Close() error {
	if g.model != nil {
		g.model.Free()
		g.model = nil
	}
	return nil
}

func zn(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
