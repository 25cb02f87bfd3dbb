package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Request performs an HTTP request against the handler and returns the
// response recorder. A string body is sent as-is, everything else is
// marshaled to JSON.
func Request(t *testing.T, handler http.Handler, method, url string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteStr []byte

	switch b := body.(type) {
	case nil:
	case string:
		byteStr = []byte(b)
	default:
		var err error
		byteStr, err = json.Marshal(b)
		if err != nil {
			assert.FailNow(t, "Request body could not be marshaled", "Error: %s", err.Error())
		}
	}

	recorder := httptest.NewRecorder()
	req, err := http.NewRequest(method, url, bytes.NewReader(byteStr))
	if err != nil {
		assert.FailNow(t, "Request could not be created", "Error: %s", err.Error())
	}

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	handler.ServeHTTP(recorder, req)

	return *recorder
}

// AssertHTTPStatus verifies the response status code, printing the
// body on mismatch.
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expected ...int) {
	assert.Contains(t, expected, r.Code, "HTTP status is wrong. Response body: %s", r.Body.String())
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target interface{}) {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v'", r.Body, reflect.TypeOf(target), err)
	}
}
