package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/travelviet/places-admin/pkg/core/services"
	"github.com/travelviet/places-admin/pkg/ports"
)

type LabelHandler struct {
	service ports.LabelService
	log     *zap.Logger
}

func NewLabelHandler(service ports.LabelService, log *zap.Logger) *LabelHandler {
	return &LabelHandler{service: service, log: log}
}

// CreateLabelRequest payload
type CreateLabelRequest struct {
	LabelName string `json:"label_name"`
}

// RenameLabelRequest payload
type RenameLabelRequest struct {
	LabelName string `json:"label_name"`
}

// ToggleLabelRequest carries the active flag as the caller currently sees it;
// the stored value becomes its negation.
type ToggleLabelRequest struct {
	IsActive bool `json:"is_active"`
}

// List one page of labels
func (h *LabelHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	labels, count, err := h.service.ListLabels(r.Context(), page)
	if err != nil {
		h.log.Error("failed listing labels", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	totalPages := (count + services.LabelPageSize - 1) / services.LabelPageSize

	resp := map[string]interface{}{
		"data":        labels,
		"total":       count,
		"page":        page,
		"total_pages": totalPages,
	}
	json.NewEncoder(w).Encode(resp)
}

// Create a label via quick-add
func (h *LabelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	label, err := h.service.AddLabel(r.Context(), req.LabelName)
	if err != nil {
		h.writeLabelError(w, err, "failed adding label")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(label)
}

// Rename a label
func (h *LabelHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	var req RenameLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.RenameLabel(r.Context(), id, req.LabelName); err != nil {
		h.writeLabelError(w, err, "failed renaming label")
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
}

// Toggle a label's active flag
func (h *LabelHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	var req ToggleLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ToggleActive(r.Context(), id, req.IsActive); err != nil {
		h.writeLabelError(w, err, "failed toggling label")
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
}

func (h *LabelHandler) writeLabelError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, services.ErrBlankLabelName) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	h.log.Error(msg, zap.Error(err))
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
