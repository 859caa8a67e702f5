package dto

import (
	"encoding/json"
	"net/http"
)

// Status is the outcome reported in every response envelope.
type Status string

const (
	// StatusSuccess marks a request that completed.
	StatusSuccess Status = "success"
	// StatusFail marks a request rejected with an error.
	StatusFail Status = "fail"
)

// Response is the envelope wrapping every response body.
//
// Data is omitted for failures and for deletions.
type Response struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`

	statusCode int
}

// StatusCode returns the HTTP status code to send the envelope with.
func (r *Response) StatusCode() int {
	if r.statusCode == 0 {
		return http.StatusOK
	}
	return r.statusCode
}

// Success returns a 200 envelope. data may be nil.
func Success(message string, data any) *Response {
	return &Response{Status: StatusSuccess, Message: message, Data: data}
}

// Created returns a 201 envelope.
func Created(message string, data any) *Response {
	return &Response{Status: StatusSuccess, Message: message, Data: data, statusCode: http.StatusCreated}
}

// Fail returns the envelope for an error.
func Fail(err ErrorWithStatus) *Response {
	return &Response{Status: StatusFail, Message: err.Message(), statusCode: err.StatusCode()}
}

// Book is a book record as sent on the wire. Its fields are the ones stored,
// in stored order, so it is kept as raw JSON.
type Book = json.RawMessage

// HealthResponse is the data of the health check envelope.
type HealthResponse struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Revision  string `json:"revision"`
	Dirty     bool   `json:"dirty,omitempty"`
	Books     int    `json:"books"`
}
