package api

import (
	"net/http"

	"github.com/ericfitz/userd/internal/slogging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the main API server instance
type Server struct {
	userStore   UserStoreInterface
	rateLimiter RateLimiter
}

// NewServer creates a new API server instance
func NewServer(store UserStoreInterface, limiter RateLimiter) *Server {
	return &Server{
		userStore:   store,
		rateLimiter: limiter,
	}
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes registered.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(slogging.Recoverer())
	r.Use(slogging.LoggerMiddleware())
	r.Use(CORS())
	r.Use(RateLimitMiddleware(s.rateLimiter))
	s.RegisterHandlers(r)
	return r
}

// RegisterHandlers registers the API routes with the router
func (s *Server) RegisterHandlers(r *gin.Engine) {
	r.GET("/", s.GetLiveness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := r.Group("/users")
	{
		users.GET("", s.ListUsers)
		users.POST("", s.CreateUser)
		users.GET("/:id", s.GetUser)
		users.PUT("/:id", s.UpdateUser)
		users.DELETE("/:id", s.DeleteUser)
	}
}

// GetLiveness handles GET / as a liveness probe
func (s *Server) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
