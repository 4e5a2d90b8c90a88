package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data interface{}) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return validationError(validationErrors)
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return fmt.Errorf("%w: %s must be of type %s", ErrValidation, jsonUnmarshalTypeError.Field, jsonUnmarshalTypeError.Type)
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// BindURI binds the path parameters to the struct passed in the interface.
func BindURI(c *gin.Context, data interface{}) error {
	if err := c.ShouldBindUri(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, c.Param("id"))
	}

	return nil
}

func validationError(errs validator.ValidationErrors) error {
	texts := make([]string, 0, len(errs))
	for _, e := range errs {
		texts = append(texts, ValidationErrorToText(e))
	}

	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(texts, ", "))
}

// ValidationErrorToText returns a readable description of a failed validation.
func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", e.Field(), strings.Join(strings.Fields(e.Param()), ", "))
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}
