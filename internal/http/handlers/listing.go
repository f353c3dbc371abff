package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/internal/usecases"
	"github.com/movieguesser/movie-service/pkg/errcodes"
	"github.com/movieguesser/movie-service/pkg/response"
)

type ListingHandler struct {
	listingUsecase usecases.ListingUsecase
}

func NewListingHandler(listingUsecase usecases.ListingUsecase) *ListingHandler {
	return &ListingHandler{
		listingUsecase: listingUsecase,
	}
}

func (lh ListingHandler) FetchListingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := lh.listingUsecase.Stats(r.Context())
	if err != nil {
		if errors.Is(err, errcodes.ErrListingNotFound) {
			response.ErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponse(w, http.StatusOK, dtos.ListingStats{
		Installs:  stats.Installs,
		Forks:     stats.Forks,
		UpdatedAt: stats.UpdatedAt,
	})
}

// UpdateListingStats overwrites the Installs/Forks block on the listing page
// with the values supplied by the caller.
func (lh ListingHandler) UpdateListingStats(w http.ResponseWriter, r *http.Request) {
	var req dtos.ListingStatsInput

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := lh.listingUsecase.UpdateStats(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, errcodes.ErrNegativeStatsValue):
			response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errcodes.ErrListingNotFound):
			response.ErrorResponse(w, http.StatusNotFound, err.Error())
		default:
			response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.SuccessResponse(w, http.StatusOK, dtos.ListingStats{
		Installs:  stats.Installs,
		Forks:     stats.Forks,
		UpdatedAt: stats.UpdatedAt,
	})
}

func (lh ListingHandler) LintListing(w http.ResponseWriter, r *http.Request) {
	problems, err := lh.listingUsecase.Lint(r.Context())
	if err != nil {
		if errors.Is(err, errcodes.ErrListingNotFound) {
			response.ErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(problems) == 0 {
		response.SuccessResponse(w, http.StatusOK, "listing is well-formed")
		return
	}
	response.SuccessResponse(w, http.StatusOK, map[string][]string{"problems": problems})
}
