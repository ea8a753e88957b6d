package properties

import "github.com/gin-gonic/gin"

// Router handles property content routes
type Router struct {
	controller *Controller
}

// NewRouter creates a new property router
func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

// SetupRoutes registers property routes (public, read-only)
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	rg.GET("/property", r.controller.GetProperty)
}
