// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viewtube Authors

package models

// Response is the uniform envelope returned by every API endpoint.
// Successful responses carry a payload in Data; failures carry only the
// status code and a human-readable message.
type Response struct {
	// StatusCode duplicates the HTTP status code inside the body so that
	// clients behind intermediaries that rewrite statuses can still rely
	// on the envelope.
	StatusCode int `json:"statusCode"`

	// Data is the operation payload. Omitted on failures.
	Data any `json:"data,omitempty"`

	// Message is a human-readable outcome description.
	Message string `json:"message"`
}

// NewSuccessResponse builds a success envelope with the given payload.
func NewSuccessResponse(statusCode int, data any, message string) Response {
	return Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
	}
}

// NewFailureResponse builds a failure envelope carrying no payload.
func NewFailureResponse(statusCode int, message string) Response {
	return Response{
		StatusCode: statusCode,
		Message:    message,
	}
}

// LoginData is the payload of a successful login response. The refresh token
// travels in an http-only cookie, never in the body.
type LoginData struct {
	AccessToken string `json:"accessToken"`
}
