package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/arvell/portico/internal/metrics"
	"github.com/arvell/portico/pkg/dispatch"
	"github.com/arvell/portico/pkg/statuscache"
	"github.com/arvell/portico/pkg/toolregistry"
)

// ExecuteRequest is the synchronous entrypoint's request body.
type ExecuteRequest struct {
	ToolName   string                 `json:"toolName"`
	Parameters map[string]interface{} `json:"parameters"`
	SessionID  string                 `json:"sessionId,omitempty"`
	ToolCallID string                 `json:"toolCallId,omitempty"`
	ReflinkID  string                 `json:"reflinkId,omitempty"`
}

// Server is the HTTP gateway over the dispatch core.
type Server struct {
	host         string
	port         int
	sharedSecret string
	execTimeout  time.Duration

	registry    *toolregistry.Registry
	dispatcher  *dispatch.Dispatcher
	statusCache *statuscache.Cache
	metrics     *metrics.Metrics

	server   *http.Server
	upgrader websocket.Upgrader
	clients  *ClientRegistry
	logger   zerolog.Logger

	isShuttingDown bool
	shutdownMu     sync.RWMutex
	inFlightReqs   sync.WaitGroup
}

// Config holds server configuration.
type Config struct {
	Host         string
	Port         int
	SharedSecret string
	ExecTimeout  time.Duration
	Registry     *toolregistry.Registry
	Dispatcher   *dispatch.Dispatcher
	StatusCache  *statuscache.Cache
	Metrics      *metrics.Metrics
	Clients      *ClientRegistry
	Logger       zerolog.Logger
}

// NewServer creates the gateway server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if cfg.ExecTimeout <= 0 {
		cfg.ExecTimeout = 30 * time.Second
	}
	if cfg.Clients == nil {
		cfg.Clients = NewClientRegistry()
	}

	return &Server{
		host:         cfg.Host,
		port:         cfg.Port,
		sharedSecret: cfg.SharedSecret,
		execTimeout:  cfg.ExecTimeout,
		registry:     cfg.Registry,
		dispatcher:   cfg.Dispatcher,
		statusCache:  cfg.StatusCache,
		metrics:      cfg.Metrics,
		clients:      cfg.Clients,
		logger:       cfg.Logger.With().Str("component", "gateway").Logger(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

// Handler returns the gateway's HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tools/execute", s.handleExecute)
	mux.HandleFunc("/api/tools", s.handleCatalog)
	mux.HandleFunc("/api/providers/status", s.handleProviderStatus)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return mux
}

// Start starts the gateway server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.host, s.port),
		Handler: s.Handler(),
	}

	s.logger.Info().Str("host", s.host).Int("port", s.port).Msg("Starting gateway server")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("Gateway server error")
		}
	}()

	return nil
}

// Stop gracefully stops the server, draining in-flight requests.
func (s *Server) Stop() error {
	s.shutdownMu.Lock()
	s.isShuttingDown = true
	s.shutdownMu.Unlock()

	s.logger.Info().Msg("Shutting down gateway server")

	done := make(chan struct{})
	go func() {
		s.inFlightReqs.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		s.logger.Warn().Msg("Shutdown timeout reached, forcing close")
	}

	for _, client := range s.clients.All() {
		_ = client.Close()
	}

	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info().Msg("Gateway server stopped")
	return nil
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.shutdownMu.RLock()
	if s.isShuttingDown {
		s.shutdownMu.RUnlock()
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	s.shutdownMu.RUnlock()

	if s.sharedSecret != "" && r.Header.Get("X-Portico-Secret") != s.sharedSecret {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeResult(w, http.StatusBadRequest, dispatch.ToolResult{
			Success: false,
			Error:   dispatch.NewValidationError("malformed request body: %v", err),
			Metadata: dispatch.Metadata{
				Timestamp: time.Now(),
				Source:    "server",
			},
		})
		return
	}

	s.inFlightReqs.Add(1)
	defer s.inFlightReqs.Done()

	// Any visitor request counts as an activity ping for the background
	// provider refresh.
	if s.statusCache != nil {
		s.statusCache.MarkActivity()
	}

	result := s.dispatcher.ExecuteWithTimeout(r.Context(), dispatch.Request{
		ToolName:   req.ToolName,
		Parameters: req.Parameters,
		SessionID:  req.SessionID,
		ToolCallID: req.ToolCallID,
		ReflinkID:  req.ReflinkID,
	}, s.execTimeout)

	s.writeResult(w, statusFor(result), result)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tools": s.registry.FunctionCatalog(),
	})
}

func (s *Server) handleProviderStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.statusCache == nil {
		http.Error(w, "status cache not configured", http.StatusNotFound)
		return
	}

	s.statusCache.MarkActivity()

	providerID := r.URL.Query().Get("provider")
	if providerID == "" {
		s.writeJSON(w, http.StatusOK, s.statusCache.Stats())
		return
	}

	// Snapshot the stale value first; a miss on Get evicts the entry.
	stale, staleOK := s.statusCache.GetStale(providerID)

	status, ok := s.statusCache.Get(providerID)
	if !ok {
		// Serve stale data as a fallback while a refresh is pending.
		if staleOK {
			s.writeJSON(w, http.StatusOK, map[string]interface{}{
				"provider": providerID,
				"status":   stale,
				"stale":    true,
			})
			return
		}
		http.Error(w, "unknown provider", http.StatusNotFound)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"provider": providerID,
		"status":   status,
		"stale":    false,
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.shutdownMu.RLock()
	if s.isShuttingDown {
		s.shutdownMu.RUnlock()
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	s.shutdownMu.RUnlock()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	clientID, _ := gonanoid.New()
	client := &Client{
		ID:          clientID,
		ConnectedAt: time.Now(),
		conn:        conn,
	}
	s.clients.Add(client)

	s.logger.Info().
		Str("client_id", clientID).
		Str("ip", r.RemoteAddr).
		Msg("Observer connected")

	go s.readLoop(client)
}

// readLoop drains client frames so pings keep the connection alive and a
// close is detected promptly. Observers are read-only.
func (s *Server) readLoop(client *Client) {
	defer func() {
		_ = client.Close()
		s.clients.Remove(client.ID)
		s.logger.Info().Str("client_id", client.ID).Msg("Observer disconnected")
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
		if s.statusCache != nil {
			s.statusCache.MarkActivity()
		}
	}
}

func (s *Server) writeResult(w http.ResponseWriter, status int, result dispatch.ToolResult) {
	if s.metrics != nil {
		s.metrics.RequestsTotal.WithLabelValues("/api/tools/execute", fmt.Sprintf("%d", status)).Inc()
	}
	s.writeJSON(w, status, result)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// statusFor maps the error taxonomy onto HTTP statuses: malformed input and
// misrouted tools are 400, unknown tools 404, authorization failures 403,
// everything else 200 or 500.
func statusFor(result dispatch.ToolResult) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.Error.Code {
	case dispatch.CodeValidation, dispatch.CodeMisrouted:
		return http.StatusBadRequest
	case dispatch.CodeNotFound:
		return http.StatusNotFound
	case dispatch.CodeUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
