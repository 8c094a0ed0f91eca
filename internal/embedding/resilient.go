package embedding

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hyperjump/shirabe/pkg/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultRetryDelays returns n backoff delays doubling from one second: 1s, 2s, 4s...
func DefaultRetryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// Resilient wraps a Provider with a request rate limit and retries. Every Embed or
// EmbedBatch call waits for the limiter and, on failure, is retried after each delay
// in turn. Context errors and client errors other than 429 are never retried.
type Resilient struct {
	next    Provider
	limiter *rate.Limiter
	delays  []time.Duration
	logger  *zap.Logger
}

// ResilientOption configures a Resilient provider.
type ResilientOption func(*Resilient)

// WithRateLimit caps calls to rps per second with a burst of 1. Zero or less means no limit.
func WithRateLimit(rps float64) ResilientOption {
	return func(r *Resilient) {
		if rps > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithRetryDelays sets the wait before each retry; len(delays) is the retry count.
func WithRetryDelays(delays []time.Duration) ResilientOption {
	return func(r *Resilient) { r.delays = delays }
}

// WithRetryLogger logs each retry at warn level.
func WithRetryLogger(l *zap.Logger) ResilientOption {
	return func(r *Resilient) { r.logger = l }
}

// NewResilient wraps next. Without options it neither limits nor retries.
func NewResilient(next Provider, opts ...ResilientOption) *Resilient {
	r := &Resilient{next: next}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = utils.OrNop(r.logger)
	return r
}

// Embed calls the wrapped provider's Embed with limiting and retry.
func (r *Resilient) Embed(ctx context.Context, text string) ([]float32, error) {
	var out []float32
	err := r.do(ctx, "embed", func(ctx context.Context) error {
		v, err := r.next.Embed(ctx, text)
		out = v
		return err
	})
	return out, err
}

// EmbedBatch calls the wrapped provider's EmbedBatch with limiting and retry.
func (r *Resilient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var out [][]float32
	err := r.do(ctx, "embed_batch", func(ctx context.Context) error {
		v, err := r.next.EmbedBatch(ctx, texts)
		out = v
		return err
	})
	return out, err
}

func (r *Resilient) do(ctx context.Context, op string, call func(context.Context) error) error {
	maxAttempts := len(r.delays) + 1
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		err := call(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable(err) {
			return err
		}
		if attempt >= maxAttempts-1 {
			break
		}
		r.logger.Warn("embedding request failed, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt+2),
			zap.Duration("delay", r.delays[attempt]),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.delays[attempt]):
		}
	}
	return lastErr
}

// retryable reports whether err may succeed on a later attempt.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var (
		status    int
		apiErr    *openai.APIError
		reqErr    *openai.RequestError
		geminiErr genai.APIError
	)
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	case errors.As(err, &geminiErr):
		status = geminiErr.Code
	}
	if status == http.StatusTooManyRequests {
		return true
	}
	return status < 400 || status >= 500
}

// Dimensions returns the wrapped provider's dimension.
func (r *Resilient) Dimensions() int {
	return r.next.Dimensions()
}

// Close closes the wrapped provider.
func (r *Resilient) Close() error {
	return r.next.Close()
}
