package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"startuplink/auth"
	"startuplink/domain"
	"startuplink/errors"
	"startuplink/observability"
	"startuplink/repositories"
	"startuplink/search"
	"startuplink/services"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	log       *slog.Logger
	auths     services.IAuthService
	messages  services.IMessageService
	directory services.IDirectoryService
	indexer   *search.Indexer
	collector *observability.Collector
}

func NewHandlers(log *slog.Logger, auths services.IAuthService,
	messages services.IMessageService, directory services.IDirectoryService,
	indexer *search.Indexer, collector *observability.Collector) *Handlers {
	return &Handlers{
		log:       log,
		auths:     auths,
		messages:  messages,
		directory: directory,
		indexer:   indexer,
		collector: collector,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status := errors.MapToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Error("Request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	token, err := h.auths.Register(body.Email, body.DisplayName, body.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": string(token)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	token, err := h.auths.Login(body.Email, body.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": string(token)})
}

type sendRequest struct {
	Message string `json:"message"`
}

// Send appends one message to the conversation with the peer in the URL.
// A 2xx means the record is durable; delivery to live feeds is async.
func (h *Handlers) Send(w http.ResponseWriter, r *http.Request) {
	self, ok := auth.CurrentUser(r.Context())
	if !ok {
		h.writeError(w, errors.ErrNotAuthenticated)
		return
	}
	peer := domain.Participant(chi.URLParam(r, "peer"))

	var body sendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	if err := h.messages.Send(r.Context(), self, peer, body.Message); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// History returns the full conversation snapshot, ascending by timestamp.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	self, ok := auth.CurrentUser(r.Context())
	if !ok {
		h.writeError(w, errors.ErrNotAuthenticated)
		return
	}
	peer := domain.Participant(chi.URLParam(r, "peer"))

	messages, err := h.messages.History(self, peer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWireList(messages))
}

// Search matches terms against message bodies. With a peer query param the
// search is scoped to that conversation.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	self, ok := auth.CurrentUser(r.Context())
	if !ok {
		h.writeError(w, errors.ErrNotAuthenticated)
		return
	}

	var conversation domain.ConversationID
	if peer := r.URL.Query().Get("peer"); peer != "" {
		id, ok := domain.Resolve(self, domain.Participant(peer))
		if !ok {
			h.writeError(w, errors.ErrNoConversation)
			return
		}
		conversation = id
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	hits, err := h.indexer.Search(r.Context(), r.URL.Query().Get("q"), conversation, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	writeJSON(w, http.StatusOK, hits)
}

func (h *Handlers) PublishStartup(w http.ResponseWriter, r *http.Request) {
	self, ok := auth.CurrentUser(r.Context())
	if !ok {
		h.writeError(w, errors.ErrNotAuthenticated)
		return
	}

	var profile repositories.StartupProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	saved, err := h.directory.Publish(self, profile)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handlers) GetStartup(w http.ResponseWriter, r *http.Request) {
	profile, err := h.directory.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "startup not found"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handlers) ListStartups(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.directory.List()
	if err != nil {
		h.writeError(w, err)
		return
	}
	if profiles == nil {
		profiles = []repositories.StartupProfile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *Handlers) Stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.collector.Snapshot())
}
