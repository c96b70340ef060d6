// Package httpapi exposes the storefront stores over JSON and a WebSocket stream.
package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/nikolayk812/storefront-state/internal/catalog"
	"github.com/nikolayk812/storefront-state/internal/config"
	"github.com/nikolayk812/storefront-state/internal/port"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultWriteTimeout = 5 * time.Second

type Deps struct {
	Cart     port.CartStore
	Session  port.SessionStore
	Catalog  *catalog.Catalog
	Display  config.Display
	Gatherer prometheus.Gatherer
	Log      *slog.Logger
}

type handler struct {
	cart     port.CartStore
	session  port.SessionStore
	catalog  *catalog.Catalog
	display  config.Display
	log      *slog.Logger
	upgrader websocket.Upgrader

	writeTimeout time.Duration
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h := &handler{
		cart:    d.Cart,
		session: d.Session,
		catalog: d.Catalog,
		display: d.Display,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		writeTimeout: defaultWriteTimeout,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(tracing)
	r.Use(requestLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/display", h.getDisplay)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addItem)
			r.Delete("/items/{id}", h.removeItem)
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Post("/login", h.login)
			r.Post("/logout", h.logout)
			r.Put("/preferences", h.setPreferences)
		})
	})

	r.Get("/ws", h.stream)

	return r
}
