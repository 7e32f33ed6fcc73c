package shopserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	usersapp "github.com/Apurer/go-gin-shop-server/internal/domains/users/application"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

// respondOrderServiceError translates order application errors into RFC 7807
// responses.
func respondOrderServiceError(c *gin.Context, responder *apierrors.Responder, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		responder.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrForbidden):
		responder.Respond(c, apierrors.ErrForbidden.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrInvalidInput):
		responder.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		responder.Respond(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

// respondUserServiceError translates users application errors into RFC 7807
// responses.
func respondUserServiceError(c *gin.Context, responder *apierrors.Responder, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, usersapp.ErrAuthentication):
		responder.Respond(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
	case errors.Is(err, usersapp.ErrInvalidInput):
		responder.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		responder.Respond(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

// respondBadRequest reports malformed payloads and parameters.
func respondBadRequest(c *gin.Context, responder *apierrors.Responder, err error) {
	responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}
