package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneybox-io/backend/internal/distribution"
	"github.com/moneybox-io/backend/internal/httputil"
	"github.com/moneybox-io/backend/internal/ledger"
	"github.com/moneybox-io/backend/internal/models"
)

// RegisterDistributionRoutes registers the route triggering distributions
// with the RouterGroup that is passed.
func RegisterDistributionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDistribution)
	r.POST("", RunDistribution)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Distribution
// @Success		204
// @Router			/v1/distribution [options]
func OptionsDistribution(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Run distribution
// @Description	Distributes the configured savings amount over the moneyboxes. Either all balances change or none.
// @Tags			Distribution
// @Produce		json
// @Success		200		{object}	DistributionResponse
// @Failure		400		{object}	DistributionResponse
// @Failure		404		{object}	DistributionResponse	"No settings have been created yet"
// @Failure		409		{object}	DistributionResponse	"There is no overflow moneybox"
// @Failure		422		{object}	DistributionResponse
// @Failure		503		{object}	DistributionResponse
// @Param			request	body		DistributionRequest	false	"Savings mode, defaults to the configured one"
// @Router			/v1/distribution [post]
func RunDistribution(c *gin.Context) {
	var request DistributionRequest
	err := httputil.BindData(c, &request)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		s := err.Error()
		c.JSON(status(c, err), DistributionResponse{
			Error: &s,
		})
		return
	}

	run, err := distribution.New(ledger.New(models.DB)).Run(c.Request.Context(), models.SavingsMode(request.Mode))
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), DistributionResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DistributionResponse{Data: &run})
}
