// Package summarizer holds the dual-mode summarization core. It is structured
// into small files by concern:
//
//   - summarizer.go: Summarizer facade, constructor, state queries, routing.
//   - extractive.go: sentence segmentation, scoring, and selection.
//   - adapter_iface.go: Tokenizer/Generator capabilities and parameters.
//   - errors.go: error kinds and helpers (IsLoadFailure, IsDependencyUnavailable).
//   - metrics.go: prometheus counters for served paths and fallbacks.
//
// Build tags and runtimes:
//
//   - In-process llama (standard):
//     Uses the go-llama.cpp generator. Enabled with `-tags=llama`.
//     Files: adapter_llama.go, llama_cgo.go (linker rpath hints).
//     A no-CGO stub exists when the tag is not set: adapter_llama_stub.go.
//     Without the tag, model loading fails fast at construction and the
//     facade serves every request from the extractive path.
//
// The facade is read-only after construction and safe for concurrent use.
// External packages should rely on public methods only (New, Summarize,
// IsNeuralReady, TokenizerLoaded, Status, Close).
package summarizer
