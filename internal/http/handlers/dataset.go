package handlers

import (
	"net/http"

	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/internal/usecases"
	"github.com/movieguesser/movie-service/pkg/response"
)

type DatasetHandler struct {
	datasetUsecase usecases.DatasetUsecase
}

func NewDatasetHandler(datasetUsecase usecases.DatasetUsecase) *DatasetHandler {
	return &DatasetHandler{
		datasetUsecase: datasetUsecase,
	}
}

func (dh DatasetHandler) FetchStats(w http.ResponseWriter, r *http.Request) {
	stats, err := dh.datasetUsecase.Stats(r.Context())
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponse(w, http.StatusOK, dtos.DatasetStats{
		TotalMovies:     stats.TotalMovies,
		TotalStills:     stats.TotalStills,
		StillsPerMovie:  stats.StillsPerMovie,
		IndexingPending: stats.IndexingPending,
	})
}

func (dh DatasetHandler) ExportDataset(w http.ResponseWriter, r *http.Request) {
	path, err := dh.datasetUsecase.Export(r.Context())
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponse(w, http.StatusOK, map[string]string{"manifest": path})
}
