package ga

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig is a config of the Prometheus metrics provided by the hub.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// Options for the stored values counter.
	Sets prometheus.CounterOpts
	// Options for the fetched values counter.
	Gets prometheus.CounterOpts
	// Options for the delete requests counter.
	Deletes prometheus.CounterOpts
	// Options for the published messages counter.
	Published prometheus.CounterOpts
	// Options for the received messages counter.
	Received prometheus.CounterOpts
	// Options for the payload size histogram.
	PayloadBytes prometheus.HistogramOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "ga"
		subsystem = ""
	)

	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Sets: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sets",
			Help:      "Number of values stored through the hub",
		},
		Gets: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "gets",
			Help:      "Number of values fetched through the hub",
		},
		Deletes: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "deletes",
			Help:      "Number of keys requested for deletion through the hub",
		},
		Published: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "published",
			Help:      "Number of messages published through the hub",
		},
		Received: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "received",
			Help:      "Number of messages delivered to subscribers",
		},
		PayloadBytes: prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "payload_bytes",
			Help:      "Size of serialized payloads",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

func (c *PrometheusConfig) metrics() *metrics {
	m := metrics{
		sets:         prometheus.NewCounter(c.Sets),
		gets:         prometheus.NewCounter(c.Gets),
		deletes:      prometheus.NewCounter(c.Deletes),
		published:    prometheus.NewCounter(c.Published),
		received:     prometheus.NewCounter(c.Received),
		payloadBytes: prometheus.NewHistogram(c.PayloadBytes),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			m.sets,
			m.gets,
			m.deletes,
			m.published,
			m.received,
			m.payloadBytes,
		)
	}

	return &m
}

type metrics struct {
	sets         prometheus.Counter
	gets         prometheus.Counter
	deletes      prometheus.Counter
	published    prometheus.Counter
	received     prometheus.Counter
	payloadBytes prometheus.Histogram
}
