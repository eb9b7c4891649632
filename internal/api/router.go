package api

import (
	"foodbridge-match-service/internal/api/handlers"
	"foodbridge-match-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(
	donations ports.DonationRepository,
	requests ports.RequestRepository,
	allocations ports.AllocationRepository,
	locker ports.RunLocker,
) http.Handler {
	mux := http.NewServeMux()

	donationHandler := &handlers.DonationHandler{Repo: donations}
	requestHandler := &handlers.RequestHandler{Repo: requests}
	matchHandler := &handlers.MatchHandler{
		Locker:      locker,
		Donations:   donations,
		Requests:    requests,
		Allocations: allocations,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /donations", donationHandler.Create)
	mux.HandleFunc("GET /donations", donationHandler.List)
	mux.HandleFunc("POST /requests", requestHandler.Create)
	mux.HandleFunc("GET /requests", requestHandler.List)
	mux.HandleFunc("POST /matching/run", matchHandler.Run)
	mux.HandleFunc("GET /matching/allocations", matchHandler.ListAllocations)

	return requestIDMiddleware(loggingMiddleware(mux))
}
