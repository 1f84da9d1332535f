package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/geocoder89/mesto/internal/apperr"
	"github.com/geocoder89/mesto/internal/auth"
	"github.com/geocoder89/mesto/internal/cache"
	"github.com/geocoder89/mesto/internal/config"
	"github.com/geocoder89/mesto/internal/http/handlers"
	"github.com/geocoder89/mesto/internal/http/middlewares"
	"github.com/geocoder89/mesto/internal/observability"
	"github.com/geocoder89/mesto/internal/security"
	"github.com/geocoder89/mesto/internal/service"
)

const (
	ServiceName    = "mesto-api"
	MsgNoSuchRoute = "resource not found"
)

// Deps are the process-wide collaborators the router wires into handlers.
type Deps struct {
	Users      service.UserStore
	Cards      service.CardStore
	CardsCache cache.Store // optional
	Prom       *observability.Prom
	Gatherer   prometheus.Gatherer
	Pingers    map[string]handlers.Pinger
	Tracing    bool

	// readiness flips to 503 once this reports true
	ShuttingDown func() bool
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) (*gin.Engine, error) {
	if cfg.Env != "dev" && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := handlers.RegisterBinding(); err != nil {
		return nil, err
	}

	r := gin.New()

	// middleware
	if deps.Tracing {
		r.Use(otelgin.Middleware(ServiceName))
	}
	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.RequestLogger(log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.ErrorTranslator(log, deps.Prom))
	r.Use(middlewares.Recovery())
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperr.NotFound(MsgNoSuchRoute))
	})

	// operational
	h := handlers.NewHealthHandler(deps.Pingers, deps.ShuttingDown)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// wire up services
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	usersSvc := service.NewUsers(deps.Users, security.NewHasher(cfg.BcryptCost), tokens)
	cardsSvc := service.NewCards(deps.Cards, deps.CardsCache, log)

	authHandler := handlers.NewAuthHandler(usersSvc)
	usersHandler := handlers.NewUsersHandler(usersSvc)
	cardsHandler := handlers.NewCardsHandler(cardsSvc)

	// the JSON check runs per route, so unmatched paths 404 and a missing
	// token is 401 before the body is looked at
	requireJSON := middlewares.RequireJSON()

	r.POST("/signup", requireJSON, authHandler.SignUp)
	r.POST("/signin", requireJSON, authHandler.SignIn)

	authMw := middlewares.NewAuthMiddleware(tokens)
	protected := r.Group("/")
	protected.Use(authMw.RequireAuth(), requireJSON)
	{
		protected.GET("/users", usersHandler.ListUsers)
		protected.GET("/users/me", usersHandler.GetMe)
		protected.PATCH("/users/me", usersHandler.UpdateMe)
		protected.PATCH("/users/me/avatar", usersHandler.UpdateMyAvatar)
		protected.GET("/users/:id", usersHandler.GetUser)

		protected.GET("/cards", cardsHandler.ListCards)
		protected.POST("/cards", cardsHandler.CreateCard)
		protected.DELETE("/cards/:id", cardsHandler.DeleteCard)
		protected.PUT("/cards/:id/likes", cardsHandler.LikeCard)
		protected.DELETE("/cards/:id/likes", cardsHandler.UnlikeCard)
	}

	return r, nil
}
