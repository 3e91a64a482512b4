package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-drift/native/pkg/layout"
)

// DebugServer serves loop state over HTTP. The loop publishes an immutable
// snapshot after every event; handlers never touch the live tree.
type DebugServer struct {
	gatherer prometheus.Gatherer
	logger   *slog.Logger

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener

	snapshot   atomic.Pointer[Snapshot]
	dispatches *TimingBuffer
}

// NewDebugServer creates a stopped server. Metrics are served from g when
// it is not nil.
func NewDebugServer(g prometheus.Gatherer, logger *slog.Logger) *DebugServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugServer{
		gatherer:   g,
		logger:     logger,
		dispatches: NewTimingBuffer(120),
	}
}

// Snapshot is the loop state after the most recent event.
type Snapshot struct {
	App        string      `json:"app,omitempty"`
	Events     uint64      `json:"events"`
	QueueDepth int         `json:"queueDepth"`
	LiveViews  int         `json:"liveViews"`
	LayoutSize int         `json:"layoutNodes"`
	RootType   string      `json:"rootType,omitempty"`
	Root       *LayoutNode `json:"root,omitempty"`
}

// LayoutNode is a serialized layout node.
// Uses SafeFloat for dimensions that may contain Inf/NaN from layout issues.
type LayoutNode struct {
	ID          string       `json:"id"`
	Location    SafeOffset   `json:"location"`
	Size        SafeSize     `json:"size"`
	ContentSize SafeSize     `json:"contentSize"`
	Depth       int          `json:"depth"`
	Dirty       bool         `json:"dirty"`
	Children    []LayoutNode `json:"children,omitempty"`
}

// SafeFloat wraps a float64 to handle Inf/NaN in JSON encoding.
type SafeFloat float64

func (f SafeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Infinity"`), nil
	}
	if math.IsNaN(v) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// SafeSize is a JSON-safe version of layout.Size.
type SafeSize struct {
	Width  SafeFloat `json:"width"`
	Height SafeFloat `json:"height"`
}

// SafeOffset is a JSON-safe version of layout.Point.
type SafeOffset struct {
	X SafeFloat `json:"x"`
	Y SafeFloat `json:"y"`
}

func safeSize(s layout.Size) SafeSize {
	return SafeSize{Width: SafeFloat(s.Width), Height: SafeFloat(s.Height)}
}

// maxTreeDepth limits recursion depth to prevent stack overflow from malformed trees.
const maxTreeDepth = 500

func serializeLayout(t *layout.Tree, id layout.NodeID, depth int) *LayoutNode {
	if id == layout.NoNode || !t.Contains(id) || depth > maxTreeDepth {
		return nil
	}
	n := &LayoutNode{ID: id.String(), Depth: depth, Dirty: t.IsDirty(id)}
	if l, err := t.Layout(id); err == nil {
		n.Location = SafeOffset{X: SafeFloat(l.Location.X), Y: SafeFloat(l.Location.Y)}
		n.Size = safeSize(l.Size)
		n.ContentSize = safeSize(l.ContentSize)
	}
	children, _ := t.Children(id)
	for _, c := range children {
		if child := serializeLayout(t, c, depth+1); child != nil {
			n.Children = append(n.Children, *child)
		}
	}
	return n
}

func (s *DebugServer) publish(snap *Snapshot) {
	s.snapshot.Store(snap)
}

// Start listens on port and serves in the background. It returns the
// bound port (useful when port=0 for ephemeral allocation). Starting a
// running server returns its current port.
func (s *DebugServer) Start(port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().(*net.TCPAddr).Port, nil
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, fmt.Errorf("debug server listen: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/debug", s.handleDebug)
	mux.HandleFunc("/layout", s.handleLayout)
	mux.HandleFunc("/dispatch", s.handleDispatch)
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			// Server failed - clear state so it can be restarted
			s.mu.Lock()
			if s.server == server {
				s.server = nil
				s.listener = nil
			}
			s.mu.Unlock()
			s.logger.Error("debug server failed", "err", err)
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Stop gracefully shuts the server down.
func (s *DebugServer) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		s.logger.Warn("debug server shutdown", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	// Encode to buffer first so we can catch errors
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// handleHealth returns a simple health check response naming the app once
// a loop has published.
func (s *DebugServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]string{"status": "ok"}
	if snap := s.snapshot.Load(); snap != nil && snap.App != "" {
		health["app"] = snap.App
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(health)
}

// handleDebug returns loop counters without the layout tree.
func (s *DebugServer) handleDebug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var info struct {
		HasRoot    bool   `json:"hasRoot"`
		RootType   string `json:"rootType,omitempty"`
		Events     uint64 `json:"events"`
		QueueDepth int    `json:"queueDepth"`
		LiveViews  int    `json:"liveViews"`
	}
	if snap := s.snapshot.Load(); snap != nil {
		info.HasRoot = snap.Root != nil
		info.RootType = snap.RootType
		info.Events = snap.Events
		info.QueueDepth = snap.QueueDepth
		info.LiveViews = snap.LiveViews
	}
	writeJSON(w, info)
}

// handleLayout returns the most recent layout tree.
func (s *DebugServer) handleLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.snapshot.Load()
	if snap == nil || snap.Root == nil {
		http.Error(w, "no layout tree", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

// handleDispatch returns recent event dispatch durations in milliseconds.
func (s *DebugServer) handleDispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	samples := s.dispatches.Samples()
	if value := r.URL.Query().Get("limit"); value != "" {
		if limit, err := strconv.Atoi(value); err == nil && limit > 0 && len(samples) > limit {
			samples = samples[len(samples)-limit:]
		}
	}

	resp := struct {
		SamplesMs []float64 `json:"samplesMs"`
	}{SamplesMs: make([]float64, len(samples))}
	for i, d := range samples {
		resp.SamplesMs[i] = float64(d) / float64(time.Millisecond)
	}
	writeJSON(w, resp)
}
