package store

import (
	"github.com/nikolayk812/storefront-state/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opAdd         = "add"
	opRemove      = "remove"
	opClear       = "clear"
	opLogin       = "login"
	opLogout      = "logout"
	opPreferences = "preferences"
)

// Metrics holds the Prometheus collectors shared by the stores.
type Metrics struct {
	cartOperations    *prometheus.CounterVec
	cartItems         prometheus.Gauge
	cartTotal         prometheus.Gauge
	sessionOperations *prometheus.CounterVec
	loggedIn          prometheus.Gauge
}

// NewMetrics registers the store collectors with reg under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		cartOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Total number of cart mutations",
		}, []string{"op"}),

		cartItems: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "items",
			Help:      "Sum of line item quantities in the cart",
		}),

		cartTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "total_price",
			Help:      "Total price of the cart in the store currency",
		}),

		sessionOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "operations_total",
			Help:      "Total number of session mutations",
		}, []string{"op"}),

		loggedIn: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "logged_in",
			Help:      "1 when a user is logged in, 0 for the guest session",
		}),
	}
}

func (m *Metrics) cartChanged(op string, cart domain.Cart) {
	m.cartOperations.WithLabelValues(op).Inc()
	m.cartItems.Set(float64(cart.ItemCount))
	m.cartTotal.Set(cart.TotalPrice.InexactFloat64())
}

func (m *Metrics) sessionChanged(op string) {
	m.sessionOperations.WithLabelValues(op).Inc()

	switch op {
	case opLogin:
		m.loggedIn.Set(1)
	case opLogout:
		m.loggedIn.Set(0)
	}
}
