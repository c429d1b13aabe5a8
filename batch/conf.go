package batch

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/fmogensen/agentswarm-tools-sub002/internal/backoff"
)

// BackoffKind selects the delay algorithm between retry attempts.
type BackoffKind = backoff.Kind

// Re-exported backoff kinds.
const (
	BackoffExponential  = backoff.Exponential
	BackoffJittered     = backoff.Jittered
	BackoffDecorrelated = backoff.Decorrelated
)

// Option configures a batch run.
type Option func(*config)

type config struct {
	maxWorkers     int // 0 means derive from executor kind
	maxWorkersSet  bool
	kind           ExecutorKind
	observer       ProgressObserver
	continueOnErr  bool
	timeoutPerItem time.Duration
	timeoutSet     bool
	retryAttempts  int
	metadata       map[string]any
	limiter        *rate.Limiter
	rateSet        bool
	ratePerSec     float64
	rateBurst      int

	backoffKind    BackoffKind
	backoffInitial time.Duration
	backoffMax     time.Duration
	jitterFactor   float64
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		kind:           KindIO,
		continueOnErr:  true,
		backoffKind:    BackoffExponential,
		backoffInitial: time.Second,
		backoffMax:     30 * time.Second,
		jitterFactor:   0.1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.observer == nil {
		cfg.observer = NewVerboseObserver()
	}
	return cfg
}

// validate rejects invalid option combinations before any work is
// submitted.
func (c *config) validate() error {
	if c.maxWorkersSet && c.maxWorkers <= 0 {
		return invalidConfigf("max workers must be positive, got %d", c.maxWorkers)
	}
	if c.retryAttempts < 0 {
		return invalidConfigf("retry attempts must not be negative, got %d", c.retryAttempts)
	}
	if c.timeoutSet && c.timeoutPerItem <= 0 {
		return invalidConfigf("per-item timeout must be positive, got %s", c.timeoutPerItem)
	}
	if c.rateSet && (c.ratePerSec <= 0 || c.rateBurst <= 0) {
		return invalidConfigf("rate limit requires positive rate and burst, got %v/%d",
			c.ratePerSec, c.rateBurst)
	}
	if c.backoffInitial <= 0 || c.backoffMax < c.backoffInitial {
		return invalidConfigf("backoff delays must satisfy 0 < initial <= max, got %s/%s",
			c.backoffInitial, c.backoffMax)
	}
	return nil
}

// workerCount resolves the effective worker count for a run.
func (c *config) workerCount() int {
	if c.maxWorkers > 0 {
		return c.maxWorkers
	}
	return RecommendedWorkerCount(c.kind)
}

func (c *config) backoffStrategy() backoff.Strategy {
	return backoff.New(c.backoffKind, c.backoffInitial, c.backoffMax, c.jitterFactor)
}

// echo writes the effective executor configuration into a result's
// metadata.
func (c *config) echo(md map[string]any, workers int) {
	md["max_workers"] = workers
	md["executor_kind"] = c.kind.String()
	md["continue_on_error"] = c.continueOnErr
	md["retry_attempts"] = c.retryAttempts
	if c.timeoutSet {
		md["timeout_per_item_ms"] = c.timeoutPerItem.Milliseconds()
	}
}

// retryConfig derives the configuration retry attempts run with: silent
// observer, always continue on error, retries disabled.
func (c *config) retryConfig() *config {
	rc := *c
	rc.observer = NewSilentObserver()
	rc.continueOnErr = true
	rc.retryAttempts = 0
	rc.metadata = nil
	return &rc
}

// WithMaxWorkers caps the number of parallel workers. When unset, the
// count is derived from the executor kind via RecommendedWorkerCount.
func WithMaxWorkers(n int) Option {
	return func(cfg *config) {
		cfg.maxWorkers = n
		cfg.maxWorkersSet = true
	}
}

// WithExecutorKind selects the worker isolation model. Defaults to
// KindIO.
func WithExecutorKind(kind ExecutorKind) Option {
	return func(cfg *config) {
		cfg.kind = kind
	}
}

// WithObserver sets the progress observer. Defaults to a verbose
// logger.
func WithObserver(o ProgressObserver) Option {
	return func(cfg *config) {
		cfg.observer = o
	}
}

// WithContinueOnError controls whether the run keeps submitting items
// after a failure. Defaults to true. When false the executor stops
// handing out new work after the first observed failure; items already
// dispatched still run to completion and are recorded.
func WithContinueOnError(continueOnErr bool) Option {
	return func(cfg *config) {
		cfg.continueOnErr = continueOnErr
	}
}

// WithTimeoutPerItem bounds how long the engine waits for a single
// operation before recording it as a timeout failure. The operation
// itself is not forcibly cancelled and may run on in the background.
func WithTimeoutPerItem(d time.Duration) Option {
	return func(cfg *config) {
		cfg.timeoutPerItem = d
		cfg.timeoutSet = true
	}
}

// WithRetryAttempts re-runs failed items up to n additional attempts
// with backoff between attempts. Defaults to 0.
func WithRetryAttempts(n int) Option {
	return func(cfg *config) {
		cfg.retryAttempts = n
	}
}

// WithRetryBackoff sets the initial and maximum delay between retry
// attempts. Defaults to 1s initial, 30s max.
func WithRetryBackoff(initial, max time.Duration) Option {
	return func(cfg *config) {
		cfg.backoffInitial = initial
		cfg.backoffMax = max
	}
}

// WithBackoffKind selects the retry backoff algorithm. Defaults to
// exponential.
func WithBackoffKind(kind BackoffKind) Option {
	return func(cfg *config) {
		cfg.backoffKind = kind
	}
}

// WithMetadata merges m into the result's metadata map.
func WithMetadata(m map[string]any) Option {
	return func(cfg *config) {
		cfg.metadata = m
	}
}

// WithRateLimit bounds how fast items are handed to workers, to avoid
// overwhelming an external service behind the operation.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(cfg *config) {
		cfg.rateSet = true
		cfg.ratePerSec = perSecond
		cfg.rateBurst = burst
		if perSecond > 0 && burst > 0 {
			cfg.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}
