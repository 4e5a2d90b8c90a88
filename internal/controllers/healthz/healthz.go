package healthz

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneybox-io/backend/internal/httputil"
	"github.com/moneybox-io/backend/internal/models"
)

type HealthResponse struct {
	Error string `json:"error" example:"the database is currently not available"`
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		503	{object}	HealthResponse
// @Router			/healthz [get]
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Error: models.ErrStorageUnavailable.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
