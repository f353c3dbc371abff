package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	playvalidator "github.com/go-playground/validator/v10"
	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/internal/usecases"
	"github.com/movieguesser/movie-service/pkg/errcodes"
	"github.com/movieguesser/movie-service/pkg/response"
)

var validate = playvalidator.New()

type MovieHandler struct {
	movieUsecase usecases.MovieUsecase
}

func NewMovieHandler(movieUsecase usecases.MovieUsecase) *MovieHandler {
	return &MovieHandler{
		movieUsecase: movieUsecase,
	}
}

// StartIndexing accepts a dataset size and kicks off a background indexing
// run over TMDB's top-rated listing.
func (mh MovieHandler) StartIndexing(w http.ResponseWriter, r *http.Request) {
	var req dtos.IndexInput

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	run, err := mh.movieUsecase.StartIndexing(r.Context(), req)
	if err != nil {
		if errors.Is(err, errcodes.ErrInvalidMovieCount) {
			response.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponse(w, http.StatusAccepted, usecases.ToRunDto(*run))
}

func (mh MovieHandler) FetchAllMovies(w http.ResponseWriter, r *http.Request) {
	query := parsePagingQuery(r)

	movies, err := mh.movieUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(movies.Movies) == 0 {
		response.SuccessResponse(w, http.StatusOK, "no movie indexed yet")
		return
	}
	response.SuccessResponse(w, http.StatusOK, movies)
}

func (mh MovieHandler) FetchMovie(w http.ResponseWriter, r *http.Request) {
	publicId := r.PathValue("id")
	if publicId == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	movie, err := mh.movieUsecase.GetByPublicId(r.Context(), publicId)
	if err != nil {
		switch {
		case errors.Is(err, errcodes.ErrInvalidPublicId):
			response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errcodes.ErrNoRecordFound):
			response.ErrorResponse(w, http.StatusNotFound, err.Error())
		default:
			response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.SuccessResponse(w, http.StatusOK, usecases.ToMovieDto(*movie))
}

// FetchRun reports the progress of an indexing run.
func (mh MovieHandler) FetchRun(w http.ResponseWriter, r *http.Request) {
	publicId := r.PathValue("id")
	if publicId == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "Run id is required")
		return
	}

	run, err := mh.movieUsecase.GetRunByPublicId(r.Context(), publicId)
	if err != nil {
		switch {
		case errors.Is(err, errcodes.ErrInvalidPublicId):
			response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errcodes.ErrNoRecordFound):
			response.ErrorResponse(w, http.StatusNotFound, err.Error())
		default:
			response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.SuccessResponse(w, http.StatusOK, usecases.ToRunDto(*run))
}

func parsePagingQuery(r *http.Request) dtos.APIPagingDto {
	var query dtos.APIPagingDto

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		query.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		query.Limit = limit
	}
	query.Sort = r.URL.Query().Get("sort")
	query.Direction = r.URL.Query().Get("direction")

	return query
}
