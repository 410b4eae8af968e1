package metrics

import "github.com/prometheus/client_golang/prometheus"

// SessionMetrics tracks live order sessions.
type SessionMetrics struct {
	Clients        prometheus.Gauge
	Rooms          prometheus.Gauge
	Broadcasts     prometheus.Counter
	DroppedClients prometheus.Counter
}

// NewSessionMetrics registers and returns the live session collectors.
func NewSessionMetrics(namespace string, reg prometheus.Registerer) *SessionMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &SessionMetrics{
		Clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_clients",
			Help:      "Connected order session devices.",
		}),
		Rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_rooms",
			Help:      "Rooms with at least one connected device.",
		}),
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_broadcasts_total",
			Help:      "Count of messages broadcast to a room.",
		}),
		DroppedClients: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_dropped_clients_total",
			Help:      "Count of devices disconnected for not keeping up.",
		}),
	}
	m.Clients = registerGauge(reg, m.Clients)
	m.Rooms = registerGauge(reg, m.Rooms)
	m.Broadcasts = registerCounter(reg, m.Broadcasts)
	m.DroppedClients = registerCounter(reg, m.DroppedClients)
	return m
}

// SetOccupancy records the current client and room counts. Safe on a nil
// receiver, as are the other methods.
func (m *SessionMetrics) SetOccupancy(clients, rooms int) {
	if m == nil {
		return
	}
	m.Clients.Set(float64(clients))
	m.Rooms.Set(float64(rooms))
}

// ObserveBroadcast counts one room broadcast.
func (m *SessionMetrics) ObserveBroadcast() {
	if m == nil {
		return
	}
	m.Broadcasts.Inc()
}

// ObserveDrop counts one slow client disconnected.
func (m *SessionMetrics) ObserveDrop() {
	if m == nil {
		return
	}
	m.DroppedClients.Inc()
}
