package utils

import (
	"api/schemas"
	"encoding/json"
	"net/http"
)

// SendResponse writes the JSON envelope every handler replies with. A
// non-zero internalErrorCode swaps the body for the generic internal error
// message and drops the data. When both message and data are empty only the
// status line goes out.
func SendResponse(w http.ResponseWriter, statusCode int, message string, data any, internalErrorCode int) {
	if internalErrorCode != 0 {
		message = SendInternalError(internalErrorCode)
		data = nil
	}

	if message == "" && data == nil {
		w.WriteHeader(statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(schemas.ApiResponse{
		Message: message,
		Data:    data,
	})
}
