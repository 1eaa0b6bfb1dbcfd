// Package httpx builds the JSON response envelopes shared by the API Lambda
// and the local dev server.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// APIError is the JSON error envelope returned by every non-2xx response.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// defaultHeaders returns the headers applied to every response. The browser
// console for the registration workflow is served from another origin, hence
// the permissive CORS set.
func defaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization,x-client-id",
		"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
	}
}

// JSON builds a proxy response with the default headers and v serialized as
// the body.
func JSON(status int, v any) events.APIGatewayProxyResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    defaultHeaders(),
			Body:       `{"error":"Internal Server Error"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    defaultHeaders(),
		Body:       string(b),
	}
}

// Error builds a proxy response carrying the standard error envelope.
func Error(status int, label, message string) events.APIGatewayProxyResponse {
	return JSON(status, APIError{Error: label, Message: message})
}

// Write copies a proxy response onto a net/http ResponseWriter; the local
// dev server uses it to serve the Lambda handlers directly.
func Write(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write([]byte(resp.Body))
}
