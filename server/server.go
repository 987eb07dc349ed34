package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/auth"
	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/catalog"
	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/config"
	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/order"
	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/repository"
)

// AuditReader lists the recorded admin mutations for an entity.
type AuditReader interface {
	AuditTrail(ctx context.Context, entityID string, limit int64) ([]*repository.AuditLog, error)
}

type Server struct {
	config  *config.Config
	logger  *zap.Logger
	router  *gin.Engine
	catalog *catalog.Service
	orders  *order.Controller
	auth    *auth.Service
	audit   AuditReader
}

func NewServer(cfg *config.Config, logger *zap.Logger, catalogSvc *catalog.Service, orders *order.Controller, authSvc *auth.Service, audit AuditReader) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config:  cfg,
		logger:  logger,
		router:  router,
		catalog: catalogSvc,
		orders:  orders,
		auth:    authSvc,
		audit:   audit,
	}
}

// SetupRoutes wires the API. The route table doubles as the capability
// table: every protected operation declares its required role here, and
// nowhere else.
func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := s.authMiddleware()
	adminOnly := s.requireRole(models.RoleAdmin)

	api := s.router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", s.register)
			authGroup.POST("/login", s.login)
			authGroup.GET("/profile", authRequired, s.getProfile)
			authGroup.PUT("/profile", authRequired, s.updateProfile)
			authGroup.GET("/users", authRequired, adminOnly, s.listUsers)
		}

		products := api.Group("/products")
		{
			products.GET("", s.listProducts)
			products.GET("/featured", s.featuredProducts)
			products.GET("/brands", s.listBrands)
			products.GET("/:id", s.getProduct)
			products.POST("", authRequired, adminOnly, s.createProduct)
			products.PUT("/:id", authRequired, adminOnly, s.updateProduct)
			products.DELETE("/:id", authRequired, adminOnly, s.deleteProduct)
			products.POST("/:id/reviews", authRequired, s.createReview)
		}

		orders := api.Group("/orders", authRequired)
		{
			orders.POST("", s.createOrder)
			orders.GET("/myorders", s.myOrders)
			orders.GET("", adminOnly, s.listOrders)
			orders.GET("/:id", s.getOrder)
			orders.PUT("/:id/pay", s.payOrder)
			orders.PUT("/:id/deliver", adminOnly, s.deliverOrder)
			orders.PUT("/:id/status", adminOnly, s.setOrderStatus)
		}

		api.GET("/audit/:entityId", authRequired, adminOnly, s.auditTrail)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Server starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Router exposes the engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
