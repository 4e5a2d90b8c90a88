package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidID        = errors.New("the moneybox ID must be a positive integer")
	ErrValidation       = errors.New("the request is not valid")
)

type ContextKey string

// ContextURL is the gin context key holding the public base URL of the API.
const ContextURL ContextKey = "moneybox-backend-url"
