package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/parsererror"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// ProviderGemini names the Gemini provider in errors and logs.
const ProviderGemini = "gemini"

var errEmptyResponse = errors.New("no candidates in response")

// generator is the part of *genai.GenerativeModel the completer needs.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiOptions configures a GeminiCompleter.
type GeminiOptions struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
	MaxAttempts       int
}

func (o GeminiOptions) withDefaults() GeminiOptions {
	if o.Model == "" {
		o.Model = "gemini-2.0-flash"
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 2
	}
	return o
}

// GeminiCompleter calls the Gemini API. Calls are rate limited, each attempt
// has its own timeout and at most MaxAttempts attempts are made.
type GeminiCompleter struct {
	client  *genai.Client
	model   generator
	limiter *rate.Limiter
	opts    GeminiOptions
	logger  logging.Logger
}

// NewGeminiCompleter creates a client for opts.Model. It fails with
// ErrProviderUnavailable when no API key is set.
func NewGeminiCompleter(ctx context.Context, opts GeminiOptions, logger logging.Logger) (*GeminiCompleter, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("gemini: %w: GEMINI_API_KEY is not set", ErrProviderUnavailable)
	}
	opts = opts.withDefaults()

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, &parsererror.ProviderError{Provider: ProviderGemini, Op: "create client", Err: err}
	}

	c := newGeminiCompleter(client.GenerativeModel(opts.Model), opts, logger)
	c.client = client
	return c, nil
}

func newGeminiCompleter(model generator, opts GeminiOptions, logger logging.Logger) *GeminiCompleter {
	opts = opts.withDefaults()
	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(opts.RequestsPerMinute) / 60.0)
	}
	return &GeminiCompleter{
		model:   model,
		limiter: rate.NewLimiter(limit, 1),
		opts:    opts,
		logger:  logging.OrDefault(logger),
	}
}

// Close releases the underlying client.
func (c *GeminiCompleter) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Complete implements Completer.
func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &parsererror.ProviderError{Provider: ProviderGemini, Op: "rate limit", Err: err}
		}

		start := time.Now()
		text, err := c.generate(ctx, prompt)
		if err == nil {
			c.logger.Debug("Gemini completion received",
				logging.Field{Key: logging.FieldAttempt, Value: attempt},
				logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
			return text, nil
		}

		lastErr = err
		c.logger.WithError(err).Warn("Gemini request failed",
			logging.Field{Key: logging.FieldAttempt, Value: attempt},
			logging.Field{Key: logging.FieldModel, Value: c.opts.Model})
		if ctx.Err() != nil {
			break
		}
	}
	return "", &parsererror.ProviderError{Provider: ProviderGemini, Op: "generate content", Err: lastErr}
}

func (c *GeminiCompleter) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
			continue
		}
		sb.WriteString(fmt.Sprintf("%v", part))
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
