package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/travelviet/places-admin/pkg/core/domain"
	"github.com/travelviet/places-admin/pkg/core/services"
	"github.com/travelviet/places-admin/pkg/ports"
)

const maxFormMemory = 32 << 20

type HTTPHandler struct {
	service ports.PlaceService
	log     *zap.Logger
}

func NewHTTPHandler(service ports.PlaceService, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// List places
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	// Echo the effective values, not the raw query, so the metadata matches
	// the slice the service returns.
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	places, count, err := h.service.ListPlaces(r.Context(), page, limit)
	if err != nil {
		h.log.Error("failed listing places", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{
		"data":  places,
		"total": count,
		"page":  page,
		"limit": limit,
	}
	json.NewEncoder(w).Encode(resp)
}

// Get a single place
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	place, err := h.service.GetPlace(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPlaceNotFound) {
			http.Error(w, "Place not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed fetching place", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(place)
}

// Create a place from a multipart form submission
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, files, closers, err := parsePlaceForm(r)
	defer closeAll(closers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	place, err := h.service.CreatePlace(r.Context(), input, files)
	if err != nil {
		h.writeSaveError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(place)
}

// Update a place from a multipart form submission
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	input, files, closers, err := parsePlaceForm(r)
	defer closeAll(closers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	place, err := h.service.UpdatePlace(r.Context(), id, input, files)
	if err != nil {
		h.writeSaveError(w, err)
		return
	}

	json.NewEncoder(w).Encode(place)
}

// writeSaveError maps a failed submission to a response: field errors as 422,
// a missing record as 404, anything else logged and returned as 500.
func (h *HTTPHandler) writeSaveError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": verr.Fields})
		return
	}
	if errors.Is(err, services.ErrPlaceNotFound) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	h.log.Error("failed saving place", zap.Error(err))
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func parsePlaceForm(r *http.Request) (ports.PlaceInput, []ports.ImageFile, []multipart.File, error) {
	var input ports.PlaceInput

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return input, nil, nil, errors.New("invalid multipart form")
	}

	input.PlaceName = r.FormValue("place_name")
	input.PhoneNumber = r.FormValue("phone_number")
	input.VisitTime = r.FormValue("visit_time")
	input.OpenCloseHour = r.FormValue("open_close_hour")
	input.Address = r.FormValue("address")
	input.Description = r.FormValue("description")
	input.Comment = r.FormValue("comment")
	input.PlaceImageFolder = r.FormValue("place_image_folder")
	input.Ticket = r.FormValue("ticket")

	// A single value may itself be a comma-joined list; repeated form fields
	// arrive as a native list. Both are normalized the same way.
	if labels := r.Form["place_label"]; len(labels) == 1 {
		input.PlaceLabel = domain.NormalizeLabels(labels[0])
	} else {
		input.PlaceLabel = domain.NormalizeLabels(labels)
	}

	var err error
	if input.Latitude, err = parseFloatField(r, "latitude"); err != nil {
		return input, nil, nil, err
	}
	if input.Longitude, err = parseFloatField(r, "longitude"); err != nil {
		return input, nil, nil, err
	}
	if input.PriceFrom, err = parseFloatField(r, "price_from"); err != nil {
		return input, nil, nil, err
	}
	if input.PriceTo, err = parseFloatField(r, "price_to"); err != nil {
		return input, nil, nil, err
	}
	if input.LikeNumber, err = parseIntField(r, "like_number"); err != nil {
		return input, nil, nil, err
	}
	if input.ViewNumber, err = parseIntField(r, "view_number"); err != nil {
		return input, nil, nil, err
	}

	var files []ports.ImageFile
	var closers []multipart.File
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			f, err := fh.Open()
			if err != nil {
				return input, nil, closers, errors.New("failed reading uploaded file")
			}
			closers = append(closers, f)
			files = append(files, ports.ImageFile{Name: fh.Filename, Size: fh.Size, Body: f})
		}
	}

	return input, files, closers, nil
}

func parseFloatField(r *http.Request, field string) (float64, error) {
	value := r.FormValue(field)
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.New("invalid " + field)
	}
	return f, nil
}

func parseIntField(r *http.Request, field string) (int64, error) {
	value := r.FormValue(field)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + field)
	}
	return n, nil
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		f.Close()
	}
}
