package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestSendResponseStatusOnly(t *testing.T) {
	recorder := httptest.NewRecorder()
	SendResponse(recorder, 204, "", nil, 0)

	require.Equal(t, 204, recorder.Code)
	require.Empty(t, recorder.Body.Bytes())
	require.Empty(t, recorder.Header().Get("Content-Type"))
}

func TestSendResponseMessageAndData(t *testing.T) {
	recorder := httptest.NewRecorder()
	SendResponse(recorder, 200, "Lead created successfully", map[string]string{"id": "abc"}, 0)

	require.Equal(t, 200, recorder.Code)
	require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	body := decodeBody(t, recorder)
	require.Equal(t, "Lead created successfully", body["message"])
	require.Equal(t, "abc", body["data"].(map[string]any)["id"])
}

func TestSendResponseInternalErrorReplacesPayload(t *testing.T) {
	recorder := httptest.NewRecorder()
	SendResponse(recorder, 500, "should not leak", map[string]string{"id": "abc"}, CANNOT_FIND_LEADS_IN_MONGODB)

	require.Equal(t, 500, recorder.Code)

	body := decodeBody(t, recorder)
	require.Equal(t, SendInternalError(CANNOT_FIND_LEADS_IN_MONGODB), body["message"])
	require.NotContains(t, body, "data")
}
