package handlers

import (
	"encoding/json"
	"errors"
	"foodbridge-match-service/internal/api/dto"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/ports"
	"foodbridge-match-service/internal/services"
	"io"
	"log"
	"net/http"
	"time"
)

// MatchHandler drives the matching engine and exposes the allocation
// audit trail.
type MatchHandler struct {
	Locker      ports.RunLocker
	Donations   ports.DonationRepository
	Requests    ports.RequestRepository
	Allocations ports.AllocationRepository
}

// Run executes one matching run over the current open snapshot. The body is
// optional; {"now": ...} pins the engine clock for reproducible runs.
func (h *MatchHandler) Run(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	var req dto.RunMatchingRequest
	switch err := dec.Decode(&req); {
	case errors.Is(err, io.EOF):
		// Empty body: run with the current clock.
	case err != nil:
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	default:
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
			return
		}
	}
	if req.Now != nil {
		now = req.Now.UTC()
	}

	result, err := services.RunMatching(r.Context(), now, h.Locker, h.Donations, h.Requests, h.Allocations)
	if err != nil {
		log.Printf("matching run failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.RunMatchingResponse{
		RunID:            result.RunID,
		CreatedAt:        result.CreatedAt,
		Allocations:      make([]dto.AllocationResponse, 0, len(result.Allocations)),
		TotalsByItem:     result.TotalsByItem,
		TotalsByCategory: result.TotalsByCategory,
		Summary: dto.RunSummaryResponse{
			DonationsTouched: result.Summary.DonationsTouched,
			RequestsTouched:  result.Summary.RequestsTouched,
			Allocations:      result.Summary.Allocations,
		},
		Warnings: result.Warnings,
	}
	for _, a := range result.Allocations {
		res.Allocations = append(res.Allocations, allocationToDTO(a))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ListAllocations returns the stored audit records with donor and NGO names
// joined in for display.
func (h *MatchHandler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	allocations, err := h.Allocations.List(r.Context())
	if err != nil {
		log.Printf("list allocations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	donorNames := map[string]string{}
	ngoNames := map[string]string{}

	res := dto.ListAllocationsResponse{
		Allocations: make([]dto.AllocationListEntry, 0, len(allocations)),
	}
	for _, a := range allocations {
		donor, ok := donorNames[a.DonationID]
		if !ok {
			if d, err := h.Donations.Get(r.Context(), a.DonationID); err == nil && d != nil {
				donor = d.DonorName
			}
			donorNames[a.DonationID] = donor
		}
		ngo, ok := ngoNames[a.RequestID]
		if !ok {
			if rq, err := h.Requests.Get(r.Context(), a.RequestID); err == nil && rq != nil {
				ngo = rq.NGOName
			}
			ngoNames[a.RequestID] = ngo
		}

		res.Allocations = append(res.Allocations, dto.AllocationListEntry{
			AllocationResponse: allocationToDTO(a),
			DonorName:          donor,
			NGOName:            ngo,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func allocationToDTO(a domain.Allocation) dto.AllocationResponse {
	return dto.AllocationResponse{
		ID:         a.ID,
		RunID:      a.RunID,
		DonationID: a.DonationID,
		RequestID:  a.RequestID,
		ItemLabel:  a.ItemLabel,
		Category:   a.Category,
		Qty:        a.Quantity,
		Unit:       a.Unit,
		DistanceKm: a.DistanceKm,
		Score:      a.Score,
		CreatedAt:  a.CreatedAt,
	}
}
