package metric

import "github.com/prometheus/client_golang/prometheus"

// SessionCollector reports whether a session token is stored at scrape
// time. The check must not contact the server.
type SessionCollector struct {
	authenticated func() bool
	desc          *prometheus.Desc
}

// NewSessionCollector creates a collector that calls authenticated on every scrape.
func NewSessionCollector(authenticated func() bool) *SessionCollector {
	return &SessionCollector{
		authenticated: authenticated,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "authenticated"),
			"1 if a session token is stored, 0 otherwise",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *SessionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *SessionCollector) Collect(ch chan<- prometheus.Metric) {
	v := 0.0
	if c.authenticated() {
		v = 1
	}
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, v)
}
