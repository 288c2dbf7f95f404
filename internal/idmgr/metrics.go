package idmgr

import "github.com/prometheus/client_golang/prometheus"

// metrics mirrors the gauge-per-concern shape used by arx-os-arxos's
// gateway connection pool (promauto.NewGaugeVec keyed by a "service" label)
// but keyed by store name instead, and registered against an
// injected prometheus.Registerer rather than the global default registry so
// that multiple stores (and tests) never collide.
type metrics struct {
	holeRatio   *prometheus.GaugeVec
	zombieRatio *prometheus.GaugeVec
	freeCount   *prometheus.GaugeVec
	nextID      *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	m := &metrics{
		holeRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xann_idmgr_physical_hole_ratio",
			Help: "free_ids / (next_id - reserved_id) for an identifier manager instance",
		}, []string{"store"}),
		zombieRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xann_idmgr_logical_zombie_ratio",
			Help: "tombstoned active slots / in-use slots for an identifier manager instance",
		}, []string{"store"}),
		freeCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xann_idmgr_free_ids",
			Help: "size of the free-lid set",
		}, []string{"store"}),
		nextID: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xann_idmgr_next_id",
			Help: "current next_id watermark",
		}, []string{"store"}),
	}
	reg.MustRegister(m.holeRatio, m.zombieRatio, m.freeCount, m.nextID)
	return m
}

func (m *metrics) observe(store string, holeRatio, zombieRatio float64, freeCount, nextID int) {
	if m == nil {
		return
	}
	m.holeRatio.WithLabelValues(store).Set(holeRatio)
	m.zombieRatio.WithLabelValues(store).Set(zombieRatio)
	m.freeCount.WithLabelValues(store).Set(float64(freeCount))
	m.nextID.WithLabelValues(store).Set(float64(nextID))
}
