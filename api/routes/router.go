package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/charmworks/charm-catalog-backend/api/controllers"
	"github.com/charmworks/charm-catalog-backend/api/middleware"
	"github.com/charmworks/charm-catalog-backend/internal/catalog"
	"github.com/charmworks/charm-catalog-backend/internal/contacts"
	"github.com/charmworks/charm-catalog-backend/internal/orders"
	"github.com/charmworks/charm-catalog-backend/pkg/config"
	"github.com/charmworks/charm-catalog-backend/pkg/logger"
	"github.com/charmworks/charm-catalog-backend/pkg/metrics"
	pkgredis "github.com/charmworks/charm-catalog-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *pkgredis.Client,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	catalogService catalog.Service,
	orderService orders.Service,
	contactService contacts.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbP,
			"redis":    redisClient,
		}))
	})

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Post("/", controllers.CreateProduct(catalogService, logg))
			r.Get("/{slug}", controllers.GetProduct(catalogService, logg))
			r.Patch("/{slug}", controllers.UpdateProduct(catalogService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(orderService, logg))
			r.Post("/", controllers.CreateOrder(orderService, logg))
			r.Get("/{id}", controllers.GetOrder(orderService, logg))
		})

		r.Route("/contact-requests", func(r chi.Router) {
			r.Get("/", controllers.ListContactRequests(contactService, logg))
			r.Post("/", controllers.CreateContactRequest(contactService, logg))
		})
	})

	return r
}
