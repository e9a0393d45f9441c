package ga

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teenjuna/ga/codec/json"
	"github.com/teenjuna/ga/compress"
	"github.com/teenjuna/ga/internal"
	"github.com/teenjuna/ga/retry"
)

type Option = func(*config)

// WithBucket namespaces every key and channel of the hub under "<bucket>:".
// Hubs with different buckets can share a backend without seeing each other's
// data.
func WithBucket(bucket string) Option {
	bucket = strings.TrimSpace(bucket)
	if strings.Contains(bucket, ":") {
		panic("bucket can't contain :")
	}
	return func(c *config) {
		c.bucket = bucket
	}
}

// WithAddr sets the WebSocket address of the local backend, both for the
// embedded server and for the client connection.
func WithAddr(addr string) Option {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		panic("addr can't be blank")
	}
	return func(c *config) {
		c.addr = addr
	}
}

// WithFile stores values in a SQLite database at the given path instead of
// keeping them in process memory. Only used by the local backend.
func WithFile(file string) Option {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	if strings.Contains(file, "?") {
		panic("file can't contain ?")
	}
	return func(c *config) {
		c.file = file
	}
}

// WithDurable forces fully synchronous SQLite writes at the cost of
// throughput. Only meaningful together with [WithFile].
func WithDurable(durable bool) Option {
	return func(c *config) {
		c.durable = durable
	}
}

// WithRedis switches the hub to the Redis backend: values are stored in and
// messages are routed through the Redis server at addr.
func WithRedis(addr string, db int) Option {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		panic("addr can't be blank")
	}
	if db < 0 {
		panic("db can't be < 0")
	}
	return func(c *config) {
		c.redisAddr = addr
		c.redisDB = db
	}
}

func WithCodec(codec internal.Codec) Option {
	if codec == nil {
		panic("codec can't be nil")
	}
	return func(c *config) {
		c.codec = codec
	}
}

func WithCompression(compression internal.Compression) Option {
	if compression == nil {
		panic("compression can't be nil")
	}
	return func(c *config) {
		c.compression = compression
	}
}

func WithCompressionLevel(level int) Option {
	if level < 1 || level > 9 {
		panic("level must be between 1 and 9")
	}
	return func(c *config) {
		c.level = level
	}
}

func WithRetryPolicy(policy internal.RetryPolicy) Option {
	if policy == nil {
		panic("policy can't be nil")
	}
	return func(c *config) {
		c.retryPolicy = policy
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithMetrics(metrics *PrometheusConfig) Option {
	if metrics == nil {
		panic("metrics can't be nil")
	}
	return func(c *config) {
		c.metrics = metrics.metrics()
	}
}

type config struct {
	bucket    string
	addr      string
	file      string
	durable   bool
	redisAddr string
	redisDB   int

	codec       internal.Codec
	compression internal.Compression
	level       int
	retryPolicy internal.RetryPolicy
	logger      zerolog.Logger
	metrics     *metrics
}

func newConfig(options ...Option) *config {
	options = append([]Option{
		WithAddr("localhost:8765"),
		WithCodec(json.New()),
		WithCompression(compress.None()),
		WithCompressionLevel(compress.DefaultLevel),
		WithRetryPolicy(retry.Fixed(5, time.Millisecond*200)),
		WithLogger(zerolog.Nop()),
		WithMetrics(Prometheus(nil)),
	}, options...)

	cfg := config{}
	for _, opt := range options {
		opt(&cfg)
	}

	return &cfg
}
