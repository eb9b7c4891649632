package handlers

import (
	"encoding/json"
	"foodbridge-match-service/internal/api/dto"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/ports"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestHandler exposes request (demand) intake and listing endpoints.
type RequestHandler struct {
	Repo ports.RequestRepository
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRequestRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.NGOName) == "" {
		writeError(w, r, http.StatusBadRequest, "ngo_name is required")
		return
	}
	if req.Priority < 0 || req.Priority > 5 {
		writeError(w, r, http.StatusBadRequest, "priority must be between 0 and 5")
		return
	}
	needs, errMsg := itemsFromDTO(req.Needs)
	if errMsg != "" {
		writeError(w, r, http.StatusBadRequest, errMsg)
		return
	}

	rq := &domain.Request{
		ID:             uuid.NewString(),
		NGOName:        strings.TrimSpace(req.NGOName),
		Needs:          needs,
		Location:       locationFromDTO(req.Location),
		Priority:       req.Priority,
		DeliveryWindow: windowFromDTO(req.DeliveryWindow),
		Status:         domain.RequestOpen,
		Version:        1,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.Repo.Create(r.Context(), rq); err != nil {
		log.Printf("create request failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, requestToDTO(rq))
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Repo.ListOpen(r.Context())
	if err != nil {
		log.Printf("list requests failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRequestsResponse{
		Requests: make([]dto.RequestResponse, 0, len(requests)),
	}
	for _, rq := range requests {
		res.Requests = append(res.Requests, requestToDTO(rq))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func requestToDTO(rq *domain.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:             rq.ID,
		NGOName:        rq.NGOName,
		Needs:          itemsToDTO(rq.Needs),
		Location:       locationToDTO(rq.Location),
		Priority:       rq.Priority,
		DeliveryWindow: windowToDTO(rq.DeliveryWindow),
		Status:         rq.Status,
		CreatedAt:      rq.CreatedAt,
	}
}
