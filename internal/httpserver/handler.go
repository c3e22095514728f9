package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/davidbz/howl/internal/catalog"
	"github.com/davidbz/howl/internal/document"
	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/observability"
)

const (
	serviceName    = "AI Research Assistant API"
	serviceVersion = "1.0.0"

	maxChatBodyBytes = 1 << 20

	componentOperational = "operational"
	componentUnavailable = "unavailable"
)

//nolint:gochecknoglobals // Read-only banner data
var serviceFeatures = []string{
	"LLM Chat (GPT-4 / Claude 3)",
	"Document Analysis",
	"Code Generation",
	"RAG (Retrieval Augmented Generation)",
}

// Handler handles chat, catalog and health requests.
type Handler struct {
	chat     *domain.ChatService
	registry domain.ProducerRegistry
	catalog  *catalog.Catalog
	docs     *document.Service
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	chat *domain.ChatService,
	registry domain.ProducerRegistry,
	models *catalog.Catalog,
	docs *document.Service,
) *Handler {
	return &Handler{
		chat:     chat,
		registry: registry,
		catalog:  models,
		docs:     docs,
	}
}

// HandleChat processes chat completion requests. Streaming replies are sent
// as server-sent events; failures before the first event become JSON errors.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CompletionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("chat request received",
		observability.String("model", req.Model),
		observability.Bool("stream", req.IsStream()),
		observability.Int("messages", len(req.Messages)),
	)

	sink := newSSEWriter(w)
	result, err := h.chat.Deliver(ctx, &req, sink)
	if err != nil {
		if sink.Started() {
			// Headers are gone; ending the body without [DONE] tells the
			// client the reply is incomplete.
			logger.Warn("stream ended early",
				observability.Int("events_sent", sink.Events()),
				observability.Error(err))
			return
		}
		writeDeliveryError(w, err)
		return
	}

	if result == nil {
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleModels lists the advertised models.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"models": h.catalog.List(r.Context()),
	})
}

// HandleRoot returns the service banner.
func (h *Handler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"service":  serviceName,
		"version":  serviceVersion,
		"features": serviceFeatures,
	})
}

// HandleHealth reports per-component status.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	llm := componentOperational
	if names, err := h.registry.List(ctx); err != nil || len(names) == 0 {
		llm = componentUnavailable
	}

	store := componentOperational
	if err := h.docs.Ping(ctx); err != nil {
		logger.Warn("document store unavailable", observability.Error(err))
		store = componentUnavailable
	}

	status, code := "healthy", http.StatusOK
	if llm != componentOperational || store != componentOperational {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"components": map[string]string{
			"api":          componentOperational,
			"llm":          llm,
			"vector_store": store,
		},
	})
}

// writeDeliveryError maps delivery errors to HTTP statuses.
func writeDeliveryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTransport):
		// The client is gone; nothing useful can be written.
		return
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Already written status, can't change it.
		return
	}
}

// writeError writes a {"detail": ...} error body.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
