// ABOUTME: Shared helpers for command tests
// ABOUTME: Starts fake backends and resets global flag state

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeBackend serves fixed JSON responses keyed by request path and points
// the CLI at it for the duration of the test.
func fakeBackend(t *testing.T, responses map[string]interface{}) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{"error": "not found", "code": 404})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)

	apiURL = server.URL
	t.Cleanup(func() { apiURL = "" })
	return server
}

// withOutput sets the output format for one test.
func withOutput(t *testing.T, format string) {
	t.Helper()
	outputFormat = format
	t.Cleanup(func() {
		outputFormat = formatText
		jsonOutput = false
	})
}
