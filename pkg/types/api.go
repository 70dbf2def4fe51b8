package types

// SummarizeRequest represents a summarization request payload.
type SummarizeRequest struct {
	// Required Khmer text to summarize. Must be at least 10 characters after trimming.
	// example: ខ្ញុំចូលចិត្តភាសាខ្មែរ។វាស្រស់ស្អាត។
	Text string `json:"text" example:"ខ្ញុំចូលចិត្តភាសាខ្មែរ។វាស្រស់ស្អាត។"`
	// Maximum summary length in characters (extractive) or tokens (neural). Defaults to 150.
	// example: 150
	MaxLength int `json:"max_length,omitempty" example:"150"`
	// Minimum summary length in tokens for the neural path. Defaults to 50.
	// Not enforced by the extractive fallback.
	// example: 50
	MinLength int `json:"min_length,omitempty" example:"50"`
}

// SummarizeResponse is returned by POST /api/summarize on success.
type SummarizeResponse struct {
	// Always true on a 200 response.
	// example: true
	Success bool `json:"success" example:"true"`
	// The generated summary.
	Summary string `json:"summary"`
	// Character count of the input text.
	// example: 320
	OriginalLength int `json:"original_length" example:"320"`
	// Character count of the summary.
	// example: 96
	SummaryLength int `json:"summary_length" example:"96"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	// Always "ok" when the server is up.
	// example: ok
	Status string `json:"status" example:"ok"`
	// True when the neural model loaded and the abstractive path is active.
	// example: false
	ModelLoaded bool `json:"model_loaded" example:"false"`
	// True when the tokenizer loaded. A tokenizer without model weights still
	// means the extractive fallback serves all requests.
	// example: true
	TokenizerLoaded bool `json:"tokenizer_loaded" example:"true"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message (bilingual Khmer/English for validation errors).
	// example: គ្មានអត្ថបទ (No text provided)
	Error string `json:"error" example:"គ្មានអត្ថបទ (No text provided)"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Summarizer state: "neural_ready" or "fallback_only".
	// example: fallback_only
	State string `json:"state" example:"fallback_only"`
	// Compute device selected for generation: "cpu" or "accelerator".
	// example: cpu
	Device string `json:"device" example:"cpu"`
	// Configured model artifact directory.
	// example: ./models/khmer_summarization_model
	ModelDir string `json:"model_dir" example:"./models/khmer_summarization_model"`
	// Weight file discovered in the artifact directory, if any.
	// example: model.safetensors
	WeightFile string `json:"weight_file,omitempty" example:"model.safetensors"`
	// True when the neural model loaded.
	// example: false
	ModelLoaded bool `json:"model_loaded" example:"false"`
	// True when the tokenizer loaded.
	// example: true
	TokenizerLoaded bool `json:"tokenizer_loaded" example:"true"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
