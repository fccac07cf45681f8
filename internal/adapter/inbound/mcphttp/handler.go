package mcphttp

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"gqlizer/internal/usecase"
)

// Handlers holds dependencies for the admin HTTP handlers.
type Handlers struct {
	syncSchemaUseCase *usecase.SyncSchemaUseCase
	logger            *slog.Logger
}

// NewHandlers creates a new Handlers struct.
func NewHandlers(syncUC *usecase.SyncSchemaUseCase, logger *slog.Logger) *Handlers {
	return &Handlers{
		syncSchemaUseCase: syncUC,
		logger:            logger.With("component", "mcphttp_handler"),
	}
}

// RegisterAdminRoutes sets up the HTTP routes for admin endpoints.
func (h *Handlers) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /admin/sync", h.handleSyncSchema)
}

// SyncRequest is the JSON body for POST /admin/sync. Source points at the
// SDL; endpoint (optional) is where compiled operations are sent.
type SyncRequest struct {
	Source   string            `json:"source"`
	Endpoint string            `json:"endpoint,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}

func (h *Handlers) handleSyncSchema(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode sync request body", slog.Any("error", err))
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Source == "" {
		http.Error(w, "Missing 'source' field in request body", http.StatusBadRequest)
		return
	}

	h.logger.Info("Received sync request", slog.String("source", req.Source))
	cfg := usecase.SchemaSourceConfig{
		URL:      req.Source,
		Endpoint: req.Endpoint,
		Headers:  req.Headers,
	}
	if err := h.syncSchemaUseCase.Execute(r.Context(), cfg); err != nil {
		h.logger.Error("Failed to sync schema", slog.String("source", req.Source), slog.Any("error", err))
		http.Error(w, fmt.Sprintf("Failed to sync schema: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintf(w, "Sync request accepted for source: %s\n", req.Source)
}
