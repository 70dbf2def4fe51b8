package summarizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"khsumd/internal/registry"
)

// fakeTokenizer maps one id per rune; id 0 acts as a special control token.
type fakeTokenizer struct {
	encodeErr error
	decodeErr error
}

func (f *fakeTokenizer) Encode(text string) ([]int, error) {
	if f.encodeErr != nil {
		return nil, f.encodeErr
	}
	runes := []rune(text)
	ids := make([]int, len(runes))
	for i, r := range runes {
		ids[i] = int(r)
	}
	return ids, nil
}

func (f *fakeTokenizer) Decode(ids []int, skipSpecial bool) (string, error) {
	if f.decodeErr != nil {
		return "", f.decodeErr
	}
	out := make([]rune, 0, len(ids))
	for _, id := range ids {
		if skipSpecial && id == 0 {
			continue
		}
		out = append(out, rune(id))
	}
	return string(out), nil
}

type fakeGenerator struct {
	out       []int
	err       error
	calls     int
	gotInput  []int
	gotParams GenerateParams
	closed    bool
}

func (f *fakeGenerator) Generate(ctx context.Context, inputIDs []int, params GenerateParams) ([]int, error) {
	f.calls++
	f.gotInput = append([]int(nil), inputIDs...)
	f.gotParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func (f *fakeGenerator) Close() error {
	f.closed = true
	return nil
}

func writeArtifacts(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(""), 0o644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
	return dir
}

func encodeIDs(t *testing.T, text string) []int {
	t.Helper()
	ids, err := (&fakeTokenizer{}).Encode(text)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return ids
}

func newTestSummarizer(t *testing.T, dir string, tok Tokenizer, gen Generator, genErr error) *Summarizer {
	t.Helper()
	cfg := Config{
		ModelDir: dir,
		LoadTokenizer: func(arts registry.Artifacts) (Tokenizer, error) {
			if tok == nil {
				return nil, errors.New("tokenizer fixture absent")
			}
			return tok, nil
		},
		OpenGenerator: func(gc GeneratorConfig) (Generator, error) {
			if genErr != nil {
				return nil, genErr
			}
			return gen, nil
		},
	}
	return New(cfg, zerolog.Nop())
}

func TestNeuralPathEncodeGenerateDecode(t *testing.T) {
	dir := writeArtifacts(t, "model.safetensors", "tokenizer_config.json")
	gen := &fakeGenerator{out: append([]int{0}, encodeIDs(t, "summary text")...)}
	s := newTestSummarizer(t, dir, &fakeTokenizer{}, gen, nil)

	if !s.IsNeuralReady() || !s.TokenizerLoaded() {
		t.Fatalf("expected neural-ready facade, state=%v tok=%v", s.state, s.tok != nil)
	}
	got := s.Summarize(context.Background(), "ខ្ញុំចូលចិត្តភាសាខ្មែរ។វាស្រស់ស្អាត។", 150, 50)
	// Special token id 0 must be dropped on decode.
	if got != "summary text" {
		t.Fatalf("got %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("generator called %d times", gen.calls)
	}
	p := gen.gotParams
	if p.NumBeams != 4 || p.LengthPenalty != 2.0 || !p.EarlyStopping || p.NoRepeatNGramSize != 3 {
		t.Fatalf("unexpected params: %+v", p)
	}
	if p.MinTokens != 50 || p.MaxTokens != 150 {
		t.Fatalf("unexpected bounds: %+v", p)
	}
}

func TestNeuralInputCappedAt1024Tokens(t *testing.T) {
	dir := writeArtifacts(t, "model.safetensors", "tokenizer_config.json")
	gen := &fakeGenerator{out: encodeIDs(t, "ok")}
	s := newTestSummarizer(t, dir, &fakeTokenizer{}, gen, nil)

	long := make([]rune, 5000)
	for i := range long {
		long[i] = 'ក'
	}
	s.Summarize(context.Background(), string(long), 150, 50)
	if len(gen.gotInput) != DefaultMaxInputTokens {
		t.Fatalf("input len = %d, want %d", len(gen.gotInput), DefaultMaxInputTokens)
	}
}

func TestGenerationFailureFallsBackOnce(t *testing.T) {
	dir := writeArtifacts(t, "model.safetensors", "tokenizer_config.json")
	gen := &fakeGenerator{err: errors.New("beam search exploded")}
	s := newTestSummarizer(t, dir, &fakeTokenizer{}, gen, nil)

	text := "ខ្ញុំចូលចិត្តភាសាខ្មែរ។វាស្រស់ស្អាត។"
	got := s.Summarize(context.Background(), text, 20, 5)
	if got != ExtractiveSummarize(text, 20) {
		t.Fatalf("expected extractive fallback, got %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("generation retried: %d calls", gen.calls)
	}
}

func TestEncodeFailureFallsBack(t *testing.T) {
	dir := writeArtifacts(t, "model.safetensors", "tokenizer_config.json")
	gen := &fakeGenerator{out: encodeIDs(t, "never used")}
	s := newTestSummarizer(t, dir, &fakeTokenizer{encodeErr: errors.New("bad bytes")}, gen, nil)

	text := "ab។cdefghijk។"
	if got := s.Summarize(context.Background(), text, 30, 5); got != ExtractiveSummarize(text, 30) {
		t.Fatalf("expected extractive fallback, got %q", got)
	}
	if gen.calls != 0 {
		t.Fatalf("generator should not run after encode failure")
	}
}

func TestMissingWeightsMeansFallbackOnly(t *testing.T) {
	dir := writeArtifacts(t, "tokenizer_config.json")
	opened := false
	s := New(Config{
		ModelDir: dir,
		LoadTokenizer: func(arts registry.Artifacts) (Tokenizer, error) {
			return &fakeTokenizer{}, nil
		},
		OpenGenerator: func(gc GeneratorConfig) (Generator, error) {
			opened = true
			return &fakeGenerator{}, nil
		},
	}, zerolog.Nop())

	if s.IsNeuralReady() {
		t.Fatalf("expected fallback-only without weights")
	}
	if !s.TokenizerLoaded() {
		t.Fatalf("tokenizer should load independently of weights")
	}
	if opened {
		t.Fatalf("generator must not be opened without weights")
	}
	text := "ab។cdefghijk។"
	if got := s.Summarize(context.Background(), text, 30, 5); got != ExtractiveSummarize(text, 30) {
		t.Fatalf("got %q", got)
	}
}

func TestModelWithoutTokenizerBehavesAsFallback(t *testing.T) {
	dir := writeArtifacts(t, "model.safetensors")
	gen := &fakeGenerator{out: encodeIDs(t, "never used")}
	s := newTestSummarizer(t, dir, nil, gen, nil)

	// Model loaded, tokenizer absent: generation needs both.
	if !s.IsNeuralReady() {
		t.Fatalf("model load should still succeed")
	}
	if s.TokenizerLoaded() {
		t.Fatalf("tokenizer should be absent")
	}
	text := "ab។cdefghijk។"
	if got := s.Summarize(context.Background(), text, 30, 5); got != ExtractiveSummarize(text, 30) {
		t.Fatalf("got %q", got)
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not run without a tokenizer")
	}
}

func TestModelLoadFailureDemotesToFallback(t *testing.T) {
	dir := writeArtifacts(t, "model.safetensors", "tokenizer_config.json")
	s := newTestSummarizer(t, dir, &fakeTokenizer{}, nil, errors.New("corrupt weights"))
	if s.IsNeuralReady() {
		t.Fatalf("expected fallback-only after load failure")
	}
	if got := s.Summarize(context.Background(), "abcdef", 3, 1); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestDefaultGeneratorStubDemotesToFallback(t *testing.T) {
	// Without the 'llama' build tag the default generator fails fast at
	// construction.
	dir := writeArtifacts(t, "model.safetensors", "tokenizer_config.json")
	s := New(Config{
		ModelDir: dir,
		LoadTokenizer: func(arts registry.Artifacts) (Tokenizer, error) {
			return &fakeTokenizer{}, nil
		},
	}, zerolog.Nop())
	if s.IsNeuralReady() {
		t.Skip("built with the llama tag; stub behavior not applicable")
	}
	if got := s.Summarize(context.Background(), "abcdef", 3, 1); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

// slowGenerator records how many Generate calls overlap.
type slowGenerator struct {
	inFlight int32
	maxSeen  int32
	out      []int
}

func (g *slowGenerator) Generate(ctx context.Context, inputIDs []int, params GenerateParams) ([]int, error) {
	n := atomic.AddInt32(&g.inFlight, 1)
	for {
		m := atomic.LoadInt32(&g.maxSeen)
		if n <= m || atomic.CompareAndSwapInt32(&g.maxSeen, m, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	atomic.AddInt32(&g.inFlight, -1)
	return g.out, nil
}

func (g *slowGenerator) Close() error { return nil }

func TestGenerationIsSingleFlight(t *testing.T) {
	dir := writeArtifacts(t, "model.safetensors", "tokenizer_config.json")
	gen := &slowGenerator{out: encodeIDs(t, "ok")}
	s := newTestSummarizer(t, dir, &fakeTokenizer{}, gen, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Summarize(context.Background(), "ខ្ញុំចូលចិត្តភាសាខ្មែរ។វាស្រស់ស្អាត។", 150, 50)
		}()
	}
	wg.Wait()
	if got := atomic.LoadInt32(&gen.maxSeen); got != 1 {
		t.Fatalf("overlapping generations: max in-flight = %d", got)
	}
}

func TestDefaultBoundsApplied(t *testing.T) {
	dir := writeArtifacts(t, "model.safetensors", "tokenizer_config.json")
	gen := &fakeGenerator{out: encodeIDs(t, "ok")}
	s := newTestSummarizer(t, dir, &fakeTokenizer{}, gen, nil)
	s.Summarize(context.Background(), "ខ្ញុំចូលចិត្តភាសាខ្មែរ។", 0, 0)
	if gen.gotParams.MaxTokens != DefaultMaxLength || gen.gotParams.MinTokens != DefaultMinLength {
		t.Fatalf("defaults not applied: %+v", gen.gotParams)
	}
}

func TestStatusReflectsConstructorOutcome(t *testing.T) {
	dir := writeArtifacts(t, "tokenizer_config.json")
	s := newTestSummarizer(t, dir, &fakeTokenizer{}, nil, errors.New("unused"))
	st := s.Status()
	if st.State != string(StateFallbackOnly) || st.ModelLoaded || !st.TokenizerLoaded {
		t.Fatalf("unexpected status: %+v", st)
	}
	if st.Device != string(DeviceCPU) {
		t.Fatalf("device default = %q", st.Device)
	}
}

func TestResolveDevice(t *testing.T) {
	cases := []struct {
		name string
		want Device
		ok   bool
	}{
		{"", DeviceCPU, true},
		{"cpu", DeviceCPU, true},
		{"CPU", DeviceCPU, true},
		{"gpu", DeviceAccelerator, true},
		{"accelerator", DeviceAccelerator, true},
		{"tpu", DeviceCPU, false},
	}
	for _, c := range cases {
		got, ok := ResolveDevice(c.name)
		if got != c.want || ok != c.ok {
			t.Fatalf("ResolveDevice(%q) = %v/%v, want %v/%v", c.name, got, ok, c.want, c.ok)
		}
	}
	// auto follows the build's offload capability.
	want := DeviceCPU
	if acceleratorAvailable {
		want = DeviceAccelerator
	}
	if got, ok := ResolveDevice("auto"); got != want || !ok {
		t.Fatalf("ResolveDevice(auto) = %v/%v, want %v/true", got, ok, want)
	}
}

func TestCloseReleasesGenerator(t *testing.T) {
	dir := writeArtifacts(t, "model.safetensors", "tokenizer_config.json")
	gen := &fakeGenerator{out: encodeIDs(t, "ok")}
	s := newTestSummarizer(t, dir, &fakeTokenizer{}, gen, nil)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !gen.closed {
		t.Fatalf("generator not closed")
	}
}
