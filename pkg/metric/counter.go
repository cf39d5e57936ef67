package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "navmenu"

// IncrementalCounter counts events by label values.
type IncrementalCounter interface {
	Increment(val ...string)
}

// Counter is a Prometheus counter vector.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// NewCounterWithRegistry creates a counter in the navmenu namespace and
// registers it with reg. It panics if a counter of the same name is
// already registered.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(vec)

	return &Counter{
		Name: name,
		Help: help,
		vec:  vec,
	}
}

// Counters groups the counters maintained by the navmenu server.
type Counters struct {
	// MenuBuilds counts menu builds by result ("ok" or "error").
	MenuBuilds IncrementalCounter

	// Renders counts menu exports by format ("json" or "html").
	Renders IncrementalCounter

	// SourceReloads counts item file reloads by result.
	SourceReloads IncrementalCounter
}

// NewCounters creates and registers the navmenu counters with reg.
func NewCounters(reg prometheus.Registerer) *Counters {
	return &Counters{
		MenuBuilds:    NewCounterWithRegistry(reg, "menu_builds_total", "Number of menu builds.", "result"),
		Renders:       NewCounterWithRegistry(reg, "menu_renders_total", "Number of rendered menus.", "format"),
		SourceReloads: NewCounterWithRegistry(reg, "source_reloads_total", "Number of menu item file reloads.", "result"),
	}
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
