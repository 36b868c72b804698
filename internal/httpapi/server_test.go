package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(Config{RecentSize: 10, EnableDemo: true})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestDemoFault_ProducesStructured500(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/demo/fault?name=InvalidArgument&reason=value+must+be+non-nil")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Category string         `json:"category"`
		Message  string         `json:"message"`
		Context  map[string]any `json:"context"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "InvalidArgument", body.Category)
	assert.Equal(t, "value must be non-nil", body.Message)
	assert.Equal(t, "/demo/fault", body.Context["path"])
}

func TestDemoRuntime_TranslatesRuntimeFault(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/demo/runtime")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Category string `json:"category"`
		Message  string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "RuntimeError", body.Category)
	assert.Contains(t, body.Message, "nil map")
}

func TestFaults_ListsInterceptedFaults(t *testing.T) {
	ts := newTestServer(t)

	// Inject two faults, then list them
	for _, name := range []string{"First", "Second"} {
		resp, err := http.Get(ts.URL + "/demo/fault?name=" + name)
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/faults")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Faults []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		} `json:"faults"`
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Faults, 2)
	assert.Equal(t, "First", body.Faults[0].Category)
	assert.Equal(t, "Second", body.Faults[1].Category)
	assert.NotEmpty(t, body.Faults[0].ID)
}

func TestFaults_RejectsBadLimit(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/faults?n=zero")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetrics_ExportsCountersAndRuntimeFamilies(t *testing.T) {
	ts := newTestServer(t)

	// Drive one success and one fault through the guard first
	for _, path := range []string{"/demo/ok", "/demo/fault"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, `faultguard_calls_total{state="started"} 2`)
	assert.Contains(t, text, "faultguard_faults_intercepted_total 1")
	assert.Contains(t, text, `faultguard_faults_by_category_total{category="DemoFault"} 1`)
	// Families gathered from the registry (Go runtime collector)
	assert.Contains(t, text, "go_goroutines")

	// The registry mirrors the hand-written families under the same names;
	// the merge must emit each family exactly once.
	for _, family := range []string{
		"faultguard_calls_total",
		"faultguard_faults_intercepted_total",
		"faultguard_faults_by_category_total",
	} {
		assert.Equal(t, 1, strings.Count(text, "# TYPE "+family+" "),
			"family %s must appear exactly once", family)
	}
}
