package regions

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultHit            = "hit"
	resultRegionNotFound = "region_not_found"
	resultLocaleNotFound = "locale_not_found"
)

type metrics struct {
	lookups *prometheus.CounterVec
}

// newMetrics registers the lookup counter with reg. A nil registerer
// disables metrics. Registering twice with the same registerer reuses the
// collector already present.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}

	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "regionnames",
		Name:      "lookups_total",
		Help:      "Region display name lookups by result.",
	}, []string{"result"})

	if err := reg.Register(lookups); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		lookups = existing
	}
	return &metrics{lookups: lookups}, nil
}

func (m *metrics) lookup(result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result).Inc()
}
