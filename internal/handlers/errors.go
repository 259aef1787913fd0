package handlers

import (
	"errors"
	"net/http"

	"github.com/lucianosaints/app-marica-cidadao/internal/service"
	"github.com/lucianosaints/app-marica-cidadao/internal/utils"
)

// writeServiceError maps the service layer's error kinds onto HTTP status
// codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	var ae *service.AuthorizationError
	var ne *service.NotFoundError
	switch {
	case errors.As(err, &ve):
		utils.Error(w, http.StatusBadRequest, ve.Msg)
	case errors.As(err, &ae):
		utils.Error(w, http.StatusForbidden, ae.Msg)
	case errors.As(err, &ne):
		utils.Error(w, http.StatusNotFound, ne.Msg)
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
