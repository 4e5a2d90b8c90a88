package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneybox-io/backend/internal/httputil"
	"github.com/moneybox-io/backend/internal/ledger"
	"github.com/moneybox-io/backend/internal/models"
)

func registerBalanceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/add", OptionsBalance)
	r.POST("/add", AddBalance)
	r.OPTIONS("/sub", OptionsBalance)
	r.POST("/sub", SubBalance)
	r.OPTIONS("/transfer", OptionsBalance)
	r.POST("/transfer", TransferBalance)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balance
// @Success		204
// @Param			id	path	URIID	true	"ID formatted as string"
// @Router			/v1/moneyboxes/{id}/balance/add [options]
// @Router			/v1/moneyboxes/{id}/balance/sub [options]
// @Router			/v1/moneyboxes/{id}/balance/transfer [options]
func OptionsBalance(c *gin.Context) {
	httputil.OptionsPost(c)
}

// changeBalance applies change to the moneybox from the path and responds
// with the updated moneybox.
func changeBalance(c *gin.Context, change func(ctx context.Context, tx *ledger.Ledger, id uint, body BalanceChange) error) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxResponse{
			Error: &s,
		})
		return
	}

	var body BalanceChange
	err = httputil.BindData(c, &body)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxResponse{
			Error: &s,
		})
		return
	}

	ctx := c.Request.Context()
	var moneybox models.Moneybox
	err = ledger.New(models.DB).Atomic(ctx, func(tx *ledger.Ledger) error {
		err := change(ctx, tx, uri.ID, body)
		if err != nil {
			return err
		}

		moneybox, err = tx.Moneybox(ctx, uri.ID)
		return err
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MoneyboxResponse{Data: &moneybox})
}

// @Summary		Add to balance
// @Description	Adds an amount to the balance of a moneybox
// @Tags			Balance
// @Produce		json
// @Success		200		{object}	MoneyboxResponse
// @Failure		400		{object}	MoneyboxResponse
// @Failure		404		{object}	MoneyboxResponse
// @Failure		422		{object}	MoneyboxResponse
// @Failure		503		{object}	MoneyboxResponse
// @Param			id		path		URIID			true	"ID formatted as string"
// @Param			change	body		BalanceChange	true	"Amount and description"
// @Router			/v1/moneyboxes/{id}/balance/add [post]
func AddBalance(c *gin.Context) {
	changeBalance(c, func(ctx context.Context, tx *ledger.Ledger, id uint, body BalanceChange) error {
		_, err := tx.Add(ctx, id, body.Amount, body.Description)
		return err
	})
}

// @Summary		Subtract from balance
// @Description	Subtracts an amount from the balance of a moneybox
// @Tags			Balance
// @Produce		json
// @Success		200		{object}	MoneyboxResponse
// @Failure		400		{object}	MoneyboxResponse
// @Failure		404		{object}	MoneyboxResponse
// @Failure		405		{object}	MoneyboxResponse	"The balance is not sufficient"
// @Failure		422		{object}	MoneyboxResponse
// @Failure		503		{object}	MoneyboxResponse
// @Param			id		path		URIID			true	"ID formatted as string"
// @Param			change	body		BalanceChange	true	"Amount and description"
// @Router			/v1/moneyboxes/{id}/balance/sub [post]
func SubBalance(c *gin.Context) {
	changeBalance(c, func(ctx context.Context, tx *ledger.Ledger, id uint, body BalanceChange) error {
		_, err := tx.Sub(ctx, id, body.Amount, body.Description)
		return err
	})
}

// @Summary		Transfer balance
// @Description	Moves an amount from the moneybox to another moneybox
// @Tags			Balance
// @Produce		json
// @Success		200			{object}	MoneyboxListResponse	"Source and target moneybox after the transfer"
// @Failure		400			{object}	MoneyboxListResponse
// @Failure		404			{object}	MoneyboxListResponse
// @Failure		405			{object}	MoneyboxListResponse	"The balance is not sufficient"
// @Failure		422			{object}	MoneyboxListResponse
// @Failure		503			{object}	MoneyboxListResponse
// @Param			id			path		URIID		true	"ID formatted as string"
// @Param			transfer	body		Transfer	true	"Target, amount and description"
// @Router			/v1/moneyboxes/{id}/balance/transfer [post]
func TransferBalance(c *gin.Context) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxListResponse{
			Error: &s,
		})
		return
	}

	var transfer Transfer
	err = httputil.BindData(c, &transfer)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxListResponse{
			Error: &s,
		})
		return
	}

	ctx := c.Request.Context()
	var source, target models.Moneybox
	err = ledger.New(models.DB).Atomic(ctx, func(tx *ledger.Ledger) error {
		_, _, err := tx.Move(ctx, uri.ID, transfer.ToMoneyboxID, transfer.Amount, transfer.Description)
		if err != nil {
			return err
		}

		source, err = tx.Moneybox(ctx, uri.ID)
		if err != nil {
			return err
		}

		target, err = tx.Moneybox(ctx, transfer.ToMoneyboxID)
		return err
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MoneyboxListResponse{
		Data:  []models.Moneybox{source, target},
		Total: 2,
	})
}
