package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneybox-io/backend/internal/httputil"
	"github.com/moneybox-io/backend/internal/ledger"
	"github.com/moneybox-io/backend/internal/models"
	"github.com/ryanuber/go-glob"
)

// RegisterMoneyboxRoutes registers the routes for moneyboxes with
// the RouterGroup that is passed.
func RegisterMoneyboxRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMoneyboxList)
		r.GET("", GetMoneyboxes)
		r.POST("", CreateMoneybox)
		r.PATCH("", UpdatePriorities)
	}

	// Moneybox with ID
	{
		r.OPTIONS("/:id", OptionsMoneyboxDetail)
		r.GET("/:id", GetMoneybox)
		r.PATCH("/:id", UpdateMoneybox)
		r.DELETE("/:id", DeleteMoneybox)
	}

	registerBalanceRoutes(r.Group("/:id/balance"))
	registerTransactionRoutes(r.Group("/:id/transactions"))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Moneyboxes
// @Success		204
// @Router			/v1/moneyboxes [options]
func OptionsMoneyboxList(c *gin.Context) {
	httputil.OptionsGetPostPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Moneyboxes
// @Success		204
// @Failure		404	{object}	httpError
// @Failure		422	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/moneyboxes/{id} [options]
func OptionsMoneyboxDetail(c *gin.Context) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		c.JSON(status(c, err), httpError{Error: err.Error()})
		return
	}

	_, err = ledger.New(models.DB).Moneybox(c.Request.Context(), uri.ID)
	if err != nil {
		c.JSON(status(c, err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List moneyboxes
// @Description	Returns all active moneyboxes, the overflow moneybox first, then by priority
// @Tags			Moneyboxes
// @Produce		json
// @Success		200		{object}	MoneyboxListResponse
// @Failure		503		{object}	MoneyboxListResponse
// @Param			name	query		string	false	"Filter by name, supports * as wildcard"
// @Router			/v1/moneyboxes [get]
func GetMoneyboxes(c *gin.Context) {
	var filter MoneyboxQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, MoneyboxListResponse{
			Error: &s,
		})
		return
	}

	moneyboxes, err := ledger.New(models.DB).Moneyboxes(c.Request.Context())
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxListResponse{
			Error: &s,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	data := make([]models.Moneybox, 0)
	for _, moneybox := range moneyboxes {
		if filter.Name != "" && !glob.Glob(filter.Name, moneybox.Name) {
			continue
		}
		data = append(data, moneybox)
	}

	c.JSON(http.StatusOK, MoneyboxListResponse{
		Data:  data,
		Total: len(data),
	})
}

// @Summary		Create moneybox
// @Description	Creates a new moneybox with a balance of zero
// @Tags			Moneyboxes
// @Produce		json
// @Success		201			{object}	MoneyboxResponse
// @Failure		400			{object}	MoneyboxResponse
// @Failure		405			{object}	MoneyboxResponse	"The name is already in use"
// @Failure		409			{object}	MoneyboxResponse	"There already is an overflow moneybox"
// @Failure		422			{object}	MoneyboxResponse
// @Param			moneybox	body		MoneyboxEditable	true	"Moneybox"
// @Router			/v1/moneyboxes [post]
func CreateMoneybox(c *gin.Context) {
	var editable MoneyboxEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxResponse{
			Error: &s,
		})
		return
	}

	moneybox, err := ledger.New(models.DB).CreateMoneybox(c.Request.Context(), editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, MoneyboxResponse{Data: &moneybox})
}

// @Summary		Get moneybox
// @Description	Returns a specific moneybox
// @Tags			Moneyboxes
// @Produce		json
// @Success		200	{object}	MoneyboxResponse
// @Failure		404	{object}	MoneyboxResponse
// @Failure		422	{object}	MoneyboxResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/moneyboxes/{id} [get]
func GetMoneybox(c *gin.Context) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxResponse{
			Error: &s,
		})
		return
	}

	moneybox, err := ledger.New(models.DB).Moneybox(c.Request.Context(), uri.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MoneyboxResponse{Data: &moneybox})
}

// @Summary		Update moneybox
// @Description	Updates a moneybox. Only values to be updated need to be specified. The balance can only be changed with the balance endpoints.
// @Tags			Moneyboxes
// @Produce		json
// @Success		200			{object}	MoneyboxResponse
// @Failure		400			{object}	MoneyboxResponse
// @Failure		404			{object}	MoneyboxResponse
// @Failure		405			{object}	MoneyboxResponse	"The name is already in use"
// @Failure		409			{object}	MoneyboxResponse	"The priority is already in use"
// @Failure		422			{object}	MoneyboxResponse
// @Param			id			path		URIID			true	"ID formatted as string"
// @Param			moneybox	body		MoneyboxPatch	true	"Moneybox"
// @Router			/v1/moneyboxes/{id} [patch]
func UpdateMoneybox(c *gin.Context) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxResponse{
			Error: &s,
		})
		return
	}

	var patch MoneyboxPatch
	err = httputil.BindData(c, &patch)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxResponse{
			Error: &s,
		})
		return
	}

	moneybox, err := ledger.New(models.DB).UpdateMoneybox(c.Request.Context(), uri.ID, patch.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MoneyboxResponse{Data: &moneybox})
}

// @Summary		Update priorities
// @Description	Sets the priorities of several moneyboxes at once. Priorities can be swapped between moneyboxes.
// @Tags			Moneyboxes
// @Produce		json
// @Success		200			{object}	MoneyboxListResponse
// @Failure		400			{object}	MoneyboxListResponse
// @Failure		404			{object}	MoneyboxListResponse
// @Failure		409			{object}	MoneyboxListResponse	"A priority would be used twice"
// @Failure		422			{object}	MoneyboxListResponse
// @Param			priorities	body		[]MoneyboxPriority		true	"Priorities"
// @Router			/v1/moneyboxes [patch]
func UpdatePriorities(c *gin.Context) {
	var priorities []MoneyboxPriority
	err := httputil.BindData(c, &priorities)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxListResponse{
			Error: &s,
		})
		return
	}

	update := make(map[uint]int64, len(priorities))
	for _, p := range priorities {
		update[p.ID] = p.Priority
	}

	moneyboxes, err := ledger.New(models.DB).UpdatePriorities(c.Request.Context(), update)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), MoneyboxListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MoneyboxListResponse{
		Data:  moneyboxes,
		Total: len(moneyboxes),
	})
}

// @Summary		Delete moneybox
// @Description	Deletes a moneybox. Only moneyboxes with a balance of zero can be deleted, the overflow moneybox can never be deleted.
// @Tags			Moneyboxes
// @Success		204
// @Failure		403	{object}	httpError	"The overflow moneybox can not be deleted"
// @Failure		404	{object}	httpError
// @Failure		405	{object}	httpError	"The balance is not zero"
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/moneyboxes/{id} [delete]
func DeleteMoneybox(c *gin.Context) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		c.JSON(status(c, err), httpError{Error: err.Error()})
		return
	}

	err = ledger.New(models.DB).DeactivateMoneybox(c.Request.Context(), uri.ID)
	if err != nil {
		c.JSON(status(c, err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
