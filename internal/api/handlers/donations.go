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

// DonationHandler exposes donation intake and listing endpoints. Intake is
// where loose payloads are normalized into the strict model: the matching
// engine itself assumes validated input.
type DonationHandler struct {
	Repo ports.DonationRepository
}

func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDonationRequest

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

	if strings.TrimSpace(req.DonorName) == "" {
		writeError(w, r, http.StatusBadRequest, "donor_name is required")
		return
	}
	items, errMsg := itemsFromDTO(req.Items)
	if errMsg != "" {
		writeError(w, r, http.StatusBadRequest, errMsg)
		return
	}

	d := &domain.Donation{
		ID:           uuid.NewString(),
		DonorName:    strings.TrimSpace(req.DonorName),
		Items:        items,
		Location:     locationFromDTO(req.Location),
		ReadyAfter:   req.ReadyAfter,
		PickupWindow: windowFromDTO(req.PickupWindow),
		Status:       domain.DonationOpen,
		Version:      1,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.Repo.Create(r.Context(), d); err != nil {
		log.Printf("create donation failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, donationToDTO(d))
}

func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	donations, err := h.Repo.ListOpen(r.Context())
	if err != nil {
		log.Printf("list donations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDonationsResponse{
		Donations: make([]dto.DonationResponse, 0, len(donations)),
	}
	for _, d := range donations {
		res.Donations = append(res.Donations, donationToDTO(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func donationToDTO(d *domain.Donation) dto.DonationResponse {
	return dto.DonationResponse{
		ID:           d.ID,
		DonorName:    d.DonorName,
		Items:        itemsToDTO(d.Items),
		Location:     locationToDTO(d.Location),
		ReadyAfter:   d.ReadyAfter,
		PickupWindow: windowToDTO(d.PickupWindow),
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
	}
}
