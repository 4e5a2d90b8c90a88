package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneybox-io/backend/internal/httputil"
	"github.com/moneybox-io/backend/internal/ledger"
	"github.com/moneybox-io/backend/internal/models"
)

func registerTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsTransactionList)
	r.GET("", GetTransactions)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id	path	URIID	true	"ID formatted as string"
// @Router			/v1/moneyboxes/{id}/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List transactions
// @Description	Returns the transaction log of a moneybox, oldest entry first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		404	{object}	TransactionListResponse
// @Failure		422	{object}	TransactionListResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/moneyboxes/{id}/transactions [get]
func GetTransactions(c *gin.Context) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	transactions, err := ledger.New(models.DB).Transactions(c.Request.Context(), uri.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	data := make([]models.Transaction, 0, len(transactions))
	data = append(data, transactions...)

	c.JSON(http.StatusOK, TransactionListResponse{
		Data:  data,
		Total: len(data),
	})
}
