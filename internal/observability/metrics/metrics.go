package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the availability and
// booking flows. A nil receiver is a no-op so wiring stays optional.
type BookingMetrics struct {
	availabilityTotal *prometheus.CounterVec
	bookingsTotal     *prometheus.CounterVec
	slotConflicts     prometheus.Counter
	requestLatency    *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		availabilityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meead",
			Subsystem: "availability",
			Name:      "requests_total",
			Help:      "Total availability lookups",
		}, []string{"kind", "status"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meead",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Total booking submissions",
		}, []string{"status"}),
		slotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meead",
			Subsystem: "booking",
			Name:      "slot_conflicts_total",
			Help:      "Bookings rejected because the slot was already taken",
		}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meead",
			Subsystem: "booking",
			Name:      "request_latency_seconds",
			Help:      "Latency of availability and booking operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.availabilityTotal, m.bookingsTotal, m.slotConflicts, m.requestLatency)
	return m
}

func (m *BookingMetrics) ObserveAvailability(kind, status string) {
	if m == nil {
		return
	}
	m.availabilityTotal.WithLabelValues(kind, status).Inc()
}

func (m *BookingMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflicts.Inc()
}

func (m *BookingMetrics) ObserveLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(operation).Observe(seconds)
}
