package bridge

import (
	"sort"
	"strings"
	"sync"

	"github.com/jt828/observation/pkg/observability"
	"github.com/jt828/observation/pkg/observation"
)

// MeterHandler records per-observation metrics:
//
//   - <name>_seconds           duration histogram, labeled with the
//     observation's low-cardinality key-values
//   - observations_active      gauge of in-flight observations, by name
//   - observation_errors_total counter of failed observations, by name
//   - observation_events_total counter of events, by name and event
//
// Observation names are sanitized for prometheus (dots and dashes become
// underscores). The label-key set of a duration histogram is fixed the
// first time an observation of that name stops; later observations are
// projected onto those keys, missing values reported empty.
type MeterHandler struct {
	meter observability.Meter

	active observability.Gauge
	errors observability.Counter
	events observability.Counter

	mu        sync.Mutex
	labelKeys map[string][]string
}

func NewMeterHandler(meter observability.Meter) *MeterHandler {
	return &MeterHandler{
		meter: meter,
		active: meter.Gauge("observations_active", observability.MetricOpt{
			Help:      "Number of observations currently in flight",
			LabelKeys: []string{"observation"},
		}),
		errors: meter.Counter("observation_errors_total", observability.MetricOpt{
			Help:      "Total number of observations that recorded an error",
			LabelKeys: []string{"observation"},
		}),
		events: meter.Counter("observation_events_total", observability.MetricOpt{
			Help:      "Total number of observation events",
			LabelKeys: []string{"observation", "event"},
		}),
		labelKeys: make(map[string][]string),
	}
}

func (h *MeterHandler) Supports(c *observation.Context) bool {
	return h.meter != nil
}

func (h *MeterHandler) OnStart(c *observation.Context) {
	h.active.Add(1, observability.Label{Key: "observation", Value: c.Name()})
}

func (h *MeterHandler) OnEvent(e observation.Event, c *observation.Context) {
	h.events.Inc(1,
		observability.Label{Key: "observation", Value: c.Name()},
		observability.Label{Key: "event", Value: e.Name})
}

func (h *MeterHandler) OnError(c *observation.Context) {}

func (h *MeterHandler) OnStop(c *observation.Context) {
	h.active.Add(-1, observability.Label{Key: "observation", Value: c.Name()})

	if c.Error() != nil {
		h.errors.Inc(1, observability.Label{Key: "observation", Value: c.Name()})
	}

	name := sanitizeMetricName(c.Name())
	keys := h.keysFor(name, c.LowCardinalityKeyValues())

	hist := h.meter.Histogram(name+"_seconds", observability.MetricOpt{
		Help:      "Duration of the " + c.Name() + " observation in seconds",
		LabelKeys: keys,
	})
	hist.Observe(c.Duration().Seconds(), projectLabels(keys, c.LowCardinalityKeyValues())...)
}

// keysFor pins the sorted low-cardinality key set for a metric name on
// first use. Distinct keys can sanitize to the same label name, so the
// set is de-duplicated after sanitizing.
func (h *MeterHandler) keysFor(name string, kvs []observation.KeyValue) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if keys, ok := h.labelKeys[name]; ok {
		return keys
	}
	keys := make([]string, 0, len(kvs))
	seen := make(map[string]struct{}, len(kvs))
	for _, kv := range kvs {
		k := sanitizeMetricName(kv.Key)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	h.labelKeys[name] = keys
	return keys
}

func projectLabels(keys []string, kvs []observation.KeyValue) []observability.Label {
	if len(keys) == 0 {
		return nil
	}
	out := make([]observability.Label, 0, len(keys))
	for _, k := range keys {
		l := observability.Label{Key: k}
		for _, kv := range kvs {
			if sanitizeMetricName(kv.Key) == k {
				l.Value = kv.Value
				break
			}
		}
		out = append(out, l)
	}
	return out
}

var metricNameReplacer = strings.NewReplacer(".", "_", "-", "_", "/", "_")

func sanitizeMetricName(name string) string {
	return metricNameReplacer.Replace(name)
}
