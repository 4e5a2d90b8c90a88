package v1

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/moneybox-io/backend/internal/httputil"
	"github.com/rs/zerolog/log"
)

// status returns the HTTP status for err and logs errors the client
// can not do anything about.
func status(c *gin.Context, err error) int {
	s := httputil.Status(err)
	if s >= 500 {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	return s
}
