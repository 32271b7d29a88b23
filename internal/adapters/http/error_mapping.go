package httpadapter

import (
	"net/http"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrScanNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		// Covers ErrPreprocessing, ErrClassifierUnavailable and anything
		// unexpected from the pipeline.
		return http.StatusInternalServerError
	}
}
