package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneybox-io/backend/internal/httputil"
	"github.com/moneybox-io/backend/internal/ledger"
	"github.com/moneybox-io/backend/internal/models"
)

// RegisterSettingsRoutes registers the routes for the settings with
// the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings)
	r.POST("", CreateSettings)
	r.PATCH("", UpdateSettings)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPostPatch(c)
}

// @Summary		Get settings
// @Description	Returns the distribution settings
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		404	{object}	SettingsResponse	"No settings have been created yet"
// @Router			/v1/settings [get]
func GetSettings(c *gin.Context) {
	settings, err := ledger.New(models.DB).Settings(c.Request.Context())
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), SettingsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: &settings})
}

// @Summary		Create settings
// @Description	Creates the distribution settings. They can only be created once.
// @Tags			Settings
// @Produce		json
// @Success		201			{object}	SettingsResponse
// @Failure		400			{object}	SettingsResponse
// @Failure		409			{object}	SettingsResponse	"Settings already exist"
// @Failure		422			{object}	SettingsResponse
// @Param			settings	body		SettingsEditable	true	"Settings"
// @Router			/v1/settings [post]
func CreateSettings(c *gin.Context) {
	var editable SettingsEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), SettingsResponse{
			Error: &s,
		})
		return
	}

	settings, err := ledger.New(models.DB).CreateSettings(c.Request.Context(), editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), SettingsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, SettingsResponse{Data: &settings})
}

// @Summary		Update settings
// @Description	Updates the distribution settings. Only values to be updated need to be specified.
// @Tags			Settings
// @Produce		json
// @Success		200			{object}	SettingsResponse
// @Failure		400			{object}	SettingsResponse
// @Failure		404			{object}	SettingsResponse	"No settings have been created yet"
// @Failure		422			{object}	SettingsResponse
// @Param			settings	body		SettingsPatch	true	"Settings"
// @Router			/v1/settings [patch]
func UpdateSettings(c *gin.Context) {
	var patch SettingsPatch
	err := httputil.BindData(c, &patch)
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), SettingsResponse{
			Error: &s,
		})
		return
	}

	settings, err := ledger.New(models.DB).UpdateSettings(c.Request.Context(), patch.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(c, err), SettingsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: &settings})
}
