package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/moneybox-io/backend/internal/config"
	"github.com/moneybox-io/backend/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Request is a helper method to simplify making a HTTP request for tests.
//
// body can be a string, a struct, a map or a slice. Anything but a string
// is marshalled to JSON. A nil body sends an empty request body.
func Request(t *testing.T, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	byteBuffer := &bytes.Buffer{}

	if body != nil {
		switch reflect.TypeOf(body).Kind() {
		case reflect.String:
			byteBuffer = bytes.NewBufferString(body.(string))
		case reflect.Struct, reflect.Map, reflect.Slice, reflect.Pointer:
			byteStr, err := json.Marshal(body)
			if err != nil {
				assert.FailNow(t, "Request body could not be marshalled", err)
			}
			byteBuffer = bytes.NewBuffer(byteStr)
		default:
			assert.FailNow(t, "Unsupported request body type", reflect.TypeOf(body).String())
		}
	}

	c, err := config.Load()
	require.Nil(t, err, "Configuration could not be loaded")

	r, teardown, err := router.Config(c)
	defer teardown()
	require.Nil(t, err, "Router could not be initialized")

	router.AttachRoutes(c, r.Group("/"))

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, reqURL, byteBuffer)

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), &target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}

// AssertHTTPStatus verifies that the HTTP response status is correct
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}
