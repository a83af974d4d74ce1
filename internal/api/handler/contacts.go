// 文件路径: internal/api/handler/contacts.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/creamcroissant/trailerboard/internal/service"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

// ContactHandler serves the dealer and vendor address book.
type ContactHandler struct {
	contacts service.ContactService
	logger   *slog.Logger
}

// NewContactHandler 绑定通讯录 service。
func NewContactHandler(contacts service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

// List handles GET /contacts?kind=&sort=.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context(), service.ContactListInput{
		Kind: r.URL.Query().Get("kind"),
		Sort: tablesort.ParseState(r.URL.Query().Get("sort")),
	})
	if err != nil {
		respondServiceError(w, r, h.logger, "contacts.list", err)
		return
	}
	respondList(w, contacts, len(contacts))
}

// Get handles GET /contacts/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contacts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.logger, "contacts.get", err)
		return
	}
	respondData(w, contact)
}

// Create handles POST /contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ContactSaveInput
	if err := decodeJSON(r, &input); err != nil {
		respondServiceError(w, r, h.logger, "contacts.create", err)
		return
	}
	contact, err := h.contacts.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, h.logger, "contacts.create", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"data": contact})
}

// Update handles PUT /contacts/{id}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.ContactSaveInput
	if err := decodeJSON(r, &input); err != nil {
		respondServiceError(w, r, h.logger, "contacts.update", err)
		return
	}
	contact, err := h.contacts.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondServiceError(w, r, h.logger, "contacts.update", err)
		return
	}
	respondData(w, contact)
}
