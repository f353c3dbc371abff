package handlers

import (
	"net/http"

	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/internal/usecases"
	"github.com/movieguesser/movie-service/pkg/response"
)

type GenreHandler struct {
	movieUsecase usecases.MovieUsecase
}

func NewGenreHandler(movieUsecase usecases.MovieUsecase) *GenreHandler {
	return &GenreHandler{
		movieUsecase: movieUsecase,
	}
}

func (gh GenreHandler) FetchGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := gh.movieUsecase.AllGenres(r.Context())
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]dtos.Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, dtos.Genre{TMDBID: g.TMDBID, Name: g.Name})
	}
	response.SuccessResponse(w, http.StatusOK, out)
}

func (gh GenreHandler) SyncGenres(w http.ResponseWriter, r *http.Request) {
	if err := gh.movieUsecase.SyncGenres(r.Context()); err != nil {
		response.ErrorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	response.SuccessResponse(w, http.StatusOK, "genre mapping synced")
}
