package httpx

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	resp := JSON(http.StatusOK, map[string]string{"status": "healthy"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Headers["Content-Type"]; ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Fatalf("missing CORS headers: %v", resp.Headers)
	}

	var body map[string]string
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("body = %v", body)
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	resp := Error(http.StatusBadRequest, "Bad Request", "missing field")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d, want 400", resp.StatusCode)
	}
	var body APIError
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Error != "Bad Request" || body.Message != "missing field" {
		t.Fatalf("body = %+v", body)
	}
}
