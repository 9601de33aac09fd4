package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, http.StatusCreated, "Booking created successfully", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Booking created successfully", body["message"])
	assert.NotContains(t, body, "error")
}

func TestNotFoundDefaultMessage(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Resource not found", body["message"])
}

func TestServerErrorHidesDetailOutsideDevelopment(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")

	w := httptest.NewRecorder()
	ServerError(w, "", cause, false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal server error", body["message"])
	assert.Equal(t, "Something went wrong", body["error"])

	w = httptest.NewRecorder()
	ServerError(w, "", cause, true)
	body = decode(t, w)
	assert.Equal(t, cause.Error(), body["error"])
}
