package properties

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"driftwood/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetProperty handles GET /api/v1/property
//
//	@Summary	Fetch the property description
//	@Tags		property
//	@Produce	json
//	@Success	200	{object}	response.StandardApiResponse{data=Property}
//	@Router		/property [get]
func (c *Controller) GetProperty(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Property retrieved", c.service.GetProperty(), nil)
}
