package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/native/pkg/config"
	"github.com/go-drift/native/pkg/metrics"
	"github.com/go-drift/native/pkg/platform/headless"
)

// waitForServer polls the health endpoint until ready or timeout.
func waitForServer(port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://localhost:%d/health", port)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}

// waitForServerDown polls until the server stops responding or timeout.
func waitForServerDown(port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://localhost:%d/health", port)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err != nil {
			return nil // Connection refused = server is down
		}
		resp.Body.Close()
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("server still running after %v", timeout)
}

func startServer(t *testing.T, g prometheus.Gatherer) (*DebugServer, int) {
	t.Helper()
	s := NewDebugServer(g, nil)
	port, err := s.Start(0)
	require.NoError(t, err)
	t.Cleanup(s.Stop)
	require.NoError(t, waitForServer(port, 2*time.Second))
	return s, port
}

func get(t *testing.T, port int, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(fmt.Sprintf("http://localhost:%d%s", port, path))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestDebugServer_StartStop(t *testing.T) {
	s := NewDebugServer(nil, nil)
	port, err := s.Start(0)
	require.NoError(t, err)
	require.NoError(t, waitForServer(port, 2*time.Second))

	code, body := get(t, port, "/health")
	assert.Equal(t, http.StatusOK, code)
	var health map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, "ok", health["status"])

	s.Stop()
	assert.NoError(t, waitForServerDown(port, 2*time.Second))
	s.Stop()
}

func TestDebugServer_LayoutWithoutRoot(t *testing.T) {
	_, port := startServer(t, nil)
	code, _ := get(t, port, "/layout")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestDebugServer_MethodNotAllowed(t *testing.T) {
	_, port := startServer(t, nil)
	for _, path := range []string{"/health", "/debug", "/layout", "/dispatch"} {
		resp, err := http.Post(fmt.Sprintf("http://localhost:%d%s", port, path), "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, path)
	}
}

func TestDebugServer_FailFastOnPortConflict(t *testing.T) {
	// Occupy a port with a plain listener
	blocker, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer blocker.Close()

	s := NewDebugServer(nil, nil)
	_, err = s.Start(blocker.Addr().(*net.TCPAddr).Port)
	if !assert.Error(t, err) {
		s.Stop()
	}
}

func TestDebugServer_AlreadyRunningReturnsPort(t *testing.T) {
	s, port1 := startServer(t, nil)
	port2, err := s.Start(0)
	require.NoError(t, err)
	assert.Equal(t, port1, port2)
}

func TestDebugServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	rec.Edit(metrics.EditSwap)
	_, port := startServer(t, reg)

	code, body := get(t, port, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `native_reconciler_edits_total{op="swap"} 1`)
}

func TestDebugServer_PublishesLoopState(t *testing.T) {
	s, port := startServer(t, nil)
	p := headless.New()
	win, done := start(t, p, &counter{}, WithDebugServer(s))

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/layout", port))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 5*time.Millisecond)

	_, body := get(t, port, "/layout")
	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(body), &snap))
	assert.True(t, strings.HasPrefix(snap.RootType, "views.Window"), snap.RootType)
	require.NotNil(t, snap.Root)
	assert.Len(t, snap.Root.Children, 1)

	p.Pressables()[0].Click()
	require.Eventually(t, func() bool { return s.dispatches.Count() >= 2 }, 2*time.Second, 5*time.Millisecond)

	_, body = get(t, port, "/dispatch?limit=1")
	var timings struct {
		SamplesMs []float64 `json:"samplesMs"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &timings))
	assert.Len(t, timings.SamplesMs, 1)

	win.Close()
	require.NoError(t, wait(t, done))

	_, body = get(t, port, "/debug")
	var info struct {
		HasRoot bool   `json:"hasRoot"`
		Events  uint64 `json:"events"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &info))
	assert.False(t, info.HasRoot, "torn down")
	assert.GreaterOrEqual(t, info.Events, uint64(3))
}

func TestDebugServer_HealthNamesApp(t *testing.T) {
	s, port := startServer(t, nil)
	cfg := &config.Config{App: config.AppConfig{ID: "com.example.counter"}}
	win, done := start(t, headless.New(), &counter{}, WithDebugServer(s), WithConfig(cfg))

	var health map[string]string
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/health", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		health = nil
		return json.NewDecoder(resp.Body).Decode(&health) == nil && health["app"] != ""
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, map[string]string{"status": "ok", "app": "com.example.counter"}, health)

	win.Close()
	require.NoError(t, wait(t, done))
}

func TestSafeFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{math.Inf(1), `"Infinity"`},
		{math.Inf(-1), `"-Infinity"`},
		{math.NaN(), `"NaN"`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(SafeFloat(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestTimingBuffer(t *testing.T) {
	b := NewTimingBuffer(3)
	assert.Nil(t, b.Samples())
	for i := 1; i <= 5; i++ {
		b.Add(time.Duration(i))
	}
	assert.Equal(t, []time.Duration{3, 4, 5}, b.Samples())
	assert.Equal(t, 3, b.Count())
}
