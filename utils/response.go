package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response wrapper every endpoint uses. Success is
// derived from the status code; Message defaults to "Success".
type Envelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Errors     []string    `json:"errors,omitempty"`
}

// Pagination carries the list-endpoint metadata.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewEnvelope builds a response envelope for the given status code.
func NewEnvelope(statusCode int, data interface{}, message string) Envelope {
	if message == "" {
		message = "Success"
	}
	return Envelope{
		Success:    statusCode < 400,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

// NewPagination computes the pagination block for a list response.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit)) // Ceiling division
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// Send writes an envelope as JSON with the matching HTTP status code.
func Send(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	WriteJSON(w, statusCode, NewEnvelope(statusCode, data, message))
}

// WriteJSON writes an arbitrary payload as JSON.
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"statusCode":500,"message":"Error processing response","data":null}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(response)
}
