//go:build !llama

package summarizer

// This file provides a no-CGO stub for the llama generator. It is compiled
// when the 'llama' build tag is NOT set, keeping default builds and CI
// CGO-free. The real generator lives in adapter_llama.go (tagged 'llama').

// No neural runtime, so nothing to offload to a GPU.
const acceleratorAvailable = false

// openDefaultGenerator fails fast: the neural runtime is not available in
// this build, so construction demotes the facade to fallback-only.
func openDefaultGenerator(cfg GeneratorConfig) (Generator, error) {
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
