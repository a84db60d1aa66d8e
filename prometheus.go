package arena

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "slotarena"

// Metrics exports allocator activity to Prometheus. One Metrics value can be
// shared by any number of allocators; series are labelled by allocator name
// and element type.
type Metrics struct {
	UsedSlots     *prometheus.GaugeVec
	CapacitySlots *prometheus.GaugeVec
	Allocations   *prometheus.CounterVec
	Deallocations *prometheus.CounterVec
	Constructions *prometheus.CounterVec
	Destructions  *prometheus.CounterVec
	Exhausted     *prometheus.CounterVec
}

// NewMetrics registers allocator metrics with reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	labels := []string{"allocator", "type"}
	f := promauto.With(reg)
	return &Metrics{
		UsedSlots: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "used_slots",
			Help:      "Number of slots handed out by live allocators.",
		}, labels),
		CapacitySlots: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "capacity_slots",
			Help:      "Slot capacity reserved by live allocators.",
		}, labels),
		Allocations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "allocations_total",
			Help:      "Total successful allocation requests.",
		}, labels),
		Deallocations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "deallocations_total",
			Help:      "Total deallocation requests.",
		}, labels),
		Constructions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "constructions_total",
			Help:      "Total values constructed in allocator slots.",
		}, labels),
		Destructions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "destructions_total",
			Help:      "Total values destroyed in allocator slots.",
		}, labels),
		Exhausted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "exhausted_total",
			Help:      "Total allocation requests refused because capacity was exhausted.",
		}, labels),
	}
}

// instruments are the series of one allocator. A nil *instruments discards
// every observation.
type instruments struct {
	used          prometheus.Gauge
	capacity      prometheus.Gauge
	allocations   prometheus.Counter
	deallocations prometheus.Counter
	constructions prometheus.Counter
	destructions  prometheus.Counter
	exhaustions   prometheus.Counter
}

func (m *Metrics) instrumentsFor(name, typ string) *instruments {
	if m == nil {
		return nil
	}
	return &instruments{
		used:          m.UsedSlots.WithLabelValues(name, typ),
		capacity:      m.CapacitySlots.WithLabelValues(name, typ),
		allocations:   m.Allocations.WithLabelValues(name, typ),
		deallocations: m.Deallocations.WithLabelValues(name, typ),
		constructions: m.Constructions.WithLabelValues(name, typ),
		destructions:  m.Destructions.WithLabelValues(name, typ),
		exhaustions:   m.Exhausted.WithLabelValues(name, typ),
	}
}

// Gauges are shared by every allocator with the same labels, so each
// allocator only ever adds or removes its own share.
func (i *instruments) reserved(slots int) {
	if i != nil {
		i.capacity.Add(float64(slots))
	}
}

func (i *instruments) released(used, slots int) {
	if i != nil {
		i.used.Sub(float64(used))
		i.capacity.Sub(float64(slots))
	}
}

func (i *instruments) allocated(n int) {
	if i != nil {
		i.allocations.Inc()
		i.used.Add(float64(n))
	}
}

func (i *instruments) deallocated() {
	if i != nil {
		i.deallocations.Inc()
	}
}

func (i *instruments) constructed() {
	if i != nil {
		i.constructions.Inc()
	}
}

func (i *instruments) destroyed() {
	if i != nil {
		i.destructions.Inc()
	}
}

func (i *instruments) exhausted() {
	if i != nil {
		i.exhaustions.Inc()
	}
}
