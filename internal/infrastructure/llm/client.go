package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"golang.org/x/time/rate"

	"github.com/puntoventa/backend/internal/domain"
)

// Config holds the sampling and connection parameters for the model backend
type Config struct {
	BaseURL       string
	APIKey        string
	Model         string
	Temperature   float64
	MaxTokens     int
	TopP          float64
	TopK          int
	RepeatPenalty float64
	StopSequences []string
	Timeout       time.Duration
}

// Client handles communication with a llama.cpp server through its
// OpenAI-compatible chat completion API
type Client struct {
	api     openai.Client
	limiter *rate.Limiter
	cfg     Config
	debug   bool
}

// NewClient creates a new model client. Retries are disabled: a malformed or
// slow completion is handled downstream, not replayed.
func NewClient(cfg Config) *Client {
	api := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)

	// A local inference server processes one request at a time; pace
	// submissions instead of queueing blindly
	limiter := rate.NewLimiter(rate.Limit(2), 4)

	return &Client{api: api, limiter: limiter, cfg: cfg}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// Complete submits the prompt and returns the raw completion text. The call
// blocks for the duration of model inference, bounded by the configured
// timeout, and honors cancellation of the caller's context.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       shared.ChatModel(c.cfg.Model),
		Temperature: openai.Float(c.cfg.Temperature),
		TopP:        openai.Float(c.cfg.TopP),
		MaxTokens:   openai.Int(int64(c.cfg.MaxTokens)),
	}

	// top_k and repeat_penalty are llama.cpp extensions with no place in
	// the OpenAI parameter surface; inject them into the request body
	opts := []option.RequestOption{
		option.WithJSONSet("top_k", c.cfg.TopK),
		option.WithJSONSet("repeat_penalty", c.cfg.RepeatPenalty),
	}
	if len(c.cfg.StopSequences) > 0 {
		opts = append(opts, option.WithJSONSet("stop", c.cfg.StopSequences))
	}

	start := time.Now()
	completion, err := c.api.Chat.Completions.New(ctx, params, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", fmt.Errorf("%w: no completion within %s", domain.ErrModelTimeout, c.cfg.Timeout)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: completion carried no choices", domain.ErrModelUnavailable)
	}

	reply := completion.Choices[0].Message.Content
	c.debugLog("completion in %s (%d bytes)", time.Since(start).Round(time.Millisecond), len(reply))
	return reply, nil
}

// debugLog logs a message when debug mode is enabled
func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[MODEL] "+format, args...)
	}
}
