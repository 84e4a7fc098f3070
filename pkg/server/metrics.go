package server

import "github.com/prometheus/client_golang/prometheus"

// metrics mirrors the teacher's package/metrics.go shape: a registry plus a
// handful of CounterFunc/GaugeFunc values that read live server state
// rather than being incremented by hand, so the registry can never drift
// from what the Server actually holds.
type metrics struct {
	registry *prometheus.Registry

	nextConnectionID prometheus.CounterFunc
	openConnections  prometheus.GaugeFunc
	openChannels     prometheus.GaugeFunc

	queryLatency prometheus.Summary
	tellLatency  prometheus.Summary
}

func newMetrics(s *Server) *metrics {
	m := &metrics{
		nextConnectionID: prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "nmms_next_connection_id",
				Help: "number of connections accepted over this server's lifetime",
			},
			func() float64 {
				s.mu.Lock()
				defer s.mu.Unlock()
				return float64(s.nextConnectionID)
			},
		),
		openConnections: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "nmms_open_connections",
				Help: "number of websocket connections currently open",
			},
			func() float64 {
				s.mu.Lock()
				defer s.mu.Unlock()
				return float64(len(s.connections))
			},
		),
		openChannels: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "nmms_open_channels",
				Help: "number of query/tell channels currently open across all connections",
			},
			func() float64 {
				s.mu.Lock()
				defer s.mu.Unlock()
				count := 0
				for _, c := range s.connections {
					count += c.openChannels()
				}
				return float64(count)
			},
		),
		queryLatency: prometheus.NewSummary(prometheus.SummaryOpts{
			Name: "nmms_query_latency_seconds",
			Help: "latency of derives() calls served over /ws",
		}),
		tellLatency: prometheus.NewSummary(prometheus.SummaryOpts{
			Name: "nmms_tell_latency_seconds",
			Help: "latency of add_consequence calls served over /ws",
		}),
	}

	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(m.nextConnectionID, m.openConnections, m.openChannels, m.queryLatency, m.tellLatency)
	return m
}
