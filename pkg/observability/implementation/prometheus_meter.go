package implementation

import (
	"sync"
	"time"

	"github.com/jt828/observation/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// prometheusMeter backs observability.Meter with a dedicated prometheus
// registry. Instruments are cached by name: asking twice for the same
// counter or histogram returns the already registered one, so callers that
// resolve instruments per observation never trip duplicate registration.
// The first caller's MetricOpt wins.
type prometheusMeter struct {
	registry *prometheus.Registry

	mu         sync.Mutex
	counters   map[string]observability.Counter
	histograms map[string]observability.Histogram
	gauges     map[string]observability.Gauge
}

func NewPrometheusMeter() observability.Meter {
	return &prometheusMeter{
		registry:   prometheus.NewRegistry(),
		counters:   make(map[string]observability.Counter),
		histograms: make(map[string]observability.Histogram),
		gauges:     make(map[string]observability.Gauge),
	}
}

func (m *prometheusMeter) Registry() *prometheus.Registry {
	return m.registry
}

// PromRegistry unwraps the prometheus registry behind a Meter, or nil if
// the meter is not prometheus backed.
func PromRegistry(m observability.Meter) *prometheus.Registry {
	if pm, ok := m.(*prometheusMeter); ok {
		return pm.Registry()
	}
	return nil
}

// -------------------- Counter --------------------

type promCounter struct {
	vec *prometheus.CounterVec
}

func (m *prometheusMeter) Counter(name string, opts ...observability.MetricOpt) observability.Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.counters[name]; ok {
		return c
	}

	opt := firstOpt(opts)
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        name,
			Help:        opt.Help,
			ConstLabels: toPromLabels(opt.ConstLabels),
		},
		opt.LabelKeys,
	)

	m.registry.MustRegister(vec)
	c := &promCounter{vec: vec}
	m.counters[name] = c
	return c
}

func (c *promCounter) Inc(v float64, labels ...observability.Label) {
	if len(labels) == 0 {
		c.vec.WithLabelValues().Add(v)
		return
	}
	c.vec.With(toPromLabels(labels)).Add(v)
}

// -------------------- Histogram --------------------

type promHistogram struct {
	vec *prometheus.HistogramVec
}

func (m *prometheusMeter) Histogram(name string, opts ...observability.MetricOpt) observability.Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.histograms[name]; ok {
		return h
	}

	opt := firstOpt(opts)
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        name,
			Help:        opt.Help,
			Buckets:     opt.Buckets,
			ConstLabels: toPromLabels(opt.ConstLabels),
		},
		opt.LabelKeys,
	)

	m.registry.MustRegister(vec)
	h := &promHistogram{vec: vec}
	m.histograms[name] = h
	return h
}

func (h *promHistogram) Observe(v float64, labels ...observability.Label) {
	if len(labels) == 0 {
		h.vec.WithLabelValues().Observe(v)
		return
	}
	h.vec.With(toPromLabels(labels)).Observe(v)
}

// -------------------- Gauge --------------------

type promGauge struct {
	vec *prometheus.GaugeVec
}

func (m *prometheusMeter) Gauge(name string, opts ...observability.MetricOpt) observability.Gauge {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g, ok := m.gauges[name]; ok {
		return g
	}

	opt := firstOpt(opts)
	vec := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        name,
			Help:        opt.Help,
			ConstLabels: toPromLabels(opt.ConstLabels),
		},
		opt.LabelKeys,
	)

	m.registry.MustRegister(vec)
	g := &promGauge{vec: vec}
	m.gauges[name] = g
	return g
}

func (g *promGauge) Set(v float64, labels ...observability.Label) {
	if len(labels) == 0 {
		g.vec.WithLabelValues().Set(v)
		return
	}
	g.vec.With(toPromLabels(labels)).Set(v)
}

func (g *promGauge) Add(v float64, labels ...observability.Label) {
	if len(labels) == 0 {
		g.vec.WithLabelValues().Add(v)
		return
	}
	g.vec.With(toPromLabels(labels)).Add(v)
}

// -------------------- Timer --------------------

type promTimer struct {
	histogram observability.Histogram
}

func (m *prometheusMeter) Timer(name string, opts ...observability.MetricOpt) observability.Timer {
	return &promTimer{histogram: m.Histogram(name, opts...)}
}

func (t *promTimer) Start(labels ...observability.Label) func() {
	start := time.Now()
	return func() {
		t.histogram.Observe(time.Since(start).Seconds(), labels...)
	}
}

// -------------------- Helpers --------------------

func firstOpt(opts []observability.MetricOpt) observability.MetricOpt {
	if len(opts) == 0 {
		return observability.MetricOpt{}
	}
	return opts[0]
}

func toPromLabels(labels []observability.Label) prometheus.Labels {
	if len(labels) == 0 {
		return nil
	}
	m := make(prometheus.Labels, len(labels))
	for _, l := range labels {
		m[l.Key] = l.Value
	}
	return m
}
