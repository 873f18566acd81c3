package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondHelpers(t *testing.T) {
	cases := []struct {
		respond func(http.ResponseWriter)
		status  int
		message string
	}{
		{RespondBadRequest, http.StatusBadRequest, MsgBadRequest},
		{RespondNotFound, http.StatusNotFound, MsgNotFound},
		{RespondMethodNotAllowed, http.StatusMethodNotAllowed, MsgMethodNotAllowed},
		{RespondUnprocessable, http.StatusUnprocessableEntity, MsgUnprocessable},
		{RespondInternalError, http.StatusInternalServerError, MsgInternalError},
		{RespondServiceUnavailable, http.StatusServiceUnavailable, MsgServiceUnavailable},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.respond(rec)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, ErrorResponse{Success: false, Error: tc.status, Message: tc.message}, body)
	}
}

func TestMessageFallsBackToStatusText(t *testing.T) {
	assert.Equal(t, "Conflict", Message(http.StatusConflict))
}
