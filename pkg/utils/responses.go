package utils

import (
	"encoding/json"
	"net/http"
)

// Payload holds the resource keys merged next to success and message,
// e.g. {"success":true,"message":"...","user":{...},"token":"..."}.
type Payload map[string]any

// ResponseJSON writes the storefront envelope with a custom status code.
func ResponseJSON(w http.ResponseWriter, code int, success bool, message string, payload Payload) {
	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = success
	body["message"] = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, payload Payload) {
	ResponseJSON(w, http.StatusOK, true, message, payload)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, payload Payload) {
	ResponseJSON(w, http.StatusCreated, true, message, payload)
}

// ------------- Error responses -------------

func responseError(w http.ResponseWriter, code int, message string, errors any) {
	var payload Payload
	if errors != nil {
		payload = Payload{"error": errors}
	}
	ResponseJSON(w, code, false, message, payload)
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	responseError(w, http.StatusBadRequest, message, errors)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	responseError(w, http.StatusUnauthorized, message, nil)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	responseError(w, http.StatusForbidden, message, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	responseError(w, http.StatusNotFound, message, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	responseError(w, http.StatusInternalServerError, message, nil)
}
