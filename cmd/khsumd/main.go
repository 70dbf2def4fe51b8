package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"khsumd/internal/config"
	"khsumd/internal/httpapi"
	"khsumd/internal/registry"
	"khsumd/internal/summarizer"
	"khsumd/internal/tokenizer"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	// Flags with environment variable defaults
	addr := flag.String("addr", envOr("KHSUMD_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	modelDir := flag.String("model-dir", envOr("KHSUMD_MODEL_DIR", "./models/khmer_summarization_model"),
		"Directory holding model weights and tokenizer config")
	configPath := flag.String("config", envOr("KHSUMD_CONFIG", ""), "Optional config file (.yaml/.yml/.json/.toml)")
	device := flag.String("device", envOr("KHSUMD_DEVICE", "auto"), "Compute device: auto|cpu|gpu")
	threads := flag.Int("threads", envOrInt("KHSUMD_THREADS", 0), "Generation threads (0=runtime default)")
	ctxSize := flag.Int("ctx-size", envOrInt("KHSUMD_CTX_SIZE", 0), "Model context size (0=runtime default)")
	maxInputTokens := flag.Int("max-input-tokens", envOrInt("KHSUMD_MAX_INPUT_TOKENS", 0), "Input token cap for generation (0=1024)")
	defaultMaxLen := flag.Int("default-max-length", envOrInt("KHSUMD_DEFAULT_MAX_LENGTH", 0), "Default max summary length when a request omits it (0=150)")
	defaultMinLen := flag.Int("default-min-length", envOrInt("KHSUMD_DEFAULT_MIN_LENGTH", 0), "Default min summary length when a request omits it (0=50)")
	tokEncoding := flag.String("tokenizer-encoding", envOr("KHSUMD_TOKENIZER_ENCODING", ""), "tiktoken encoding name (default cl100k_base)")
	corsEnabled := flag.Bool("cors", true, "Enable CORS for browser clients")
	logLevel := flag.String("log-level", envOr("KHSUMD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	flag.Parse()

	// Config file provides the base; explicitly set flags override it.
	var cfg config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			lg := zerolog.New(os.Stderr)
			lg.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["addr"] || cfg.Addr == "" {
		cfg.Addr = *addr
	}
	if set["model-dir"] || cfg.ModelDir == "" {
		cfg.ModelDir = *modelDir
	}
	if set["device"] || cfg.Device == "" {
		cfg.Device = *device
	}
	if set["threads"] || cfg.Threads == 0 {
		cfg.Threads = *threads
	}
	if set["ctx-size"] || cfg.CtxSize == 0 {
		cfg.CtxSize = *ctxSize
	}
	if set["max-input-tokens"] || cfg.MaxInputTokens == 0 {
		cfg.MaxInputTokens = *maxInputTokens
	}
	if set["default-max-length"] || cfg.DefaultMaxLength == 0 {
		cfg.DefaultMaxLength = *defaultMaxLen
	}
	if set["default-min-length"] || cfg.DefaultMinLength == 0 {
		cfg.DefaultMinLength = *defaultMinLen
	}
	if set["tokenizer-encoding"] || cfg.TokenizerEncoding == "" {
		cfg.TokenizerEncoding = *tokEncoding
	}
	// Bool flags cannot distinguish unset from false; the flag wins unless a
	// config file was given and the flag was left untouched.
	if set["cors"] || *configPath == "" {
		cfg.CORSEnabled = *corsEnabled
	}
	if set["log-level"] || cfg.LogLevel == "" {
		cfg.LogLevel = *logLevel
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()

	dev, known := summarizer.ResolveDevice(cfg.Device)
	if !known {
		log.Warn().Str("device", cfg.Device).Msg("unrecognized device, using cpu")
	}

	sum := summarizer.New(summarizer.Config{
		ModelDir:       cfg.ModelDir,
		Device:         dev,
		Threads:        cfg.Threads,
		CtxSize:        cfg.CtxSize,
		MaxInputTokens: cfg.MaxInputTokens,
		LoadTokenizer: func(arts registry.Artifacts) (summarizer.Tokenizer, error) {
			return tokenizer.Load(arts, cfg.TokenizerEncoding)
		},
	}, log)
	defer func() {
		if err := sum.Close(); err != nil {
			log.Warn().Err(err).Msg("close summarizer")
		}
	}()

	httpapi.SetLogger(log)
	httpapi.SetDefaultLengths(cfg.DefaultMaxLength, cfg.DefaultMinLength)
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	httpapi.SetCORSOptions(cfg.CORSEnabled, origins,
		[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
		[]string{"Accept", "Content-Type", "X-Log-Level"})

	// Base context canceled on shutdown so in-flight generation stops too.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(sum)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("model_dir", cfg.ModelDir).
			Bool("model_loaded", sum.IsNeuralReady()).
			Bool("tokenizer_loaded", sum.TokenizerLoaded()).
			Msg("khsumd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
}
