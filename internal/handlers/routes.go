package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"restaurant/internal/config"
	"restaurant/internal/logging"
	"restaurant/internal/metrics"
	"restaurant/internal/middleware"
	"restaurant/internal/services"
	"restaurant/internal/session"
	"restaurant/internal/store"
)

// Deps is everything the router needs. Mongo may be nil, in which case the
// health check skips it. Only TrustedProxies may set X-Forwarded-For; with
// none, the client IP is the connection's peer address.
type Deps struct {
	Menu           *services.MenuService
	Orders         *services.OrderService
	Admin          *services.AdminService
	Auth           *services.AuthService
	Sessions       *session.Manager
	Translator     Translator
	Store          *store.Store
	Mongo          *mongo.Database
	Admins         config.EmailSet
	CookieSecure   bool
	CORSOrigins    []string
	TrustedProxies []string
	Limiter        *middleware.RateLimiter
	Log            logrus.FieldLogger
}

func NewRouter(deps Deps) *gin.Engine {
	useJSONFieldNames()
	log := logging.Component(deps.Log, "http")
	cookies := cookieSettings{secure: deps.CookieSecure}

	r := gin.New()
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		log.WithError(err).Warn("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		gin.Recovery(),
		metrics.Middleware(),
		middleware.CORS(deps.CORSOrigins),
		middleware.LoadSession(deps.Sessions, log),
		middleware.RequestLogger(log),
	)

	checks := map[string]HealthCheck{"mysql": deps.Store.Ping}
	if deps.Mongo != nil {
		db := deps.Mongo
		checks["mongo"] = func(ctx context.Context) error { return ensureDBConnection(ctx, db) }
	}
	r.GET("/healthz", Health(checks, log))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.POST("/sessionLogin", deps.Limiter.Handler(), SessionLogin(deps.Auth, deps.Sessions, cookies, log))
	r.GET("/logout", Logout(deps.Sessions, cookies, log))
	r.GET("/whoami", WhoAmI())

	api := r.Group("/api")
	{
		api.GET("/menu", ListMenu(deps.Menu, log))
	}

	user := api.Group("")
	user.Use(middleware.RequireLogin())
	{
		user.POST("/order", CreateOrder(deps.Orders, log))
		user.GET("/orders", ListOrders(deps.Orders, log))
		user.GET("/order/:id", GetOrder(deps.Orders, log))
		user.GET("/logs", ListLogs(deps.Orders, log))
		user.POST("/translate", deps.Limiter.Handler(), Translate(deps.Translator, log))
	}

	admin := api.Group("")
	admin.Use(middleware.RequireAdmin(deps.Admins))
	{
		admin.POST("/menu", CreateMenuItem(deps.Menu, log))
		admin.PATCH("/order/:id/status", UpdateOrderStatus(deps.Admin, log))
		admin.PATCH("/order/:id/hide", HideOrder(deps.Admin, log))
		admin.GET("/admin/orders", ListAdminOrders(deps.Admin, log))
	}

	return r
}
