package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/http/mapper"
	usersports "github.com/Apurer/go-gin-shop-server/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

// UsersAPI wires HTTP transport with the users bounded context service.
type UsersAPI struct {
	service   usersports.Service
	responder *apierrors.Responder
}

// NewUsersAPI creates a UsersAPI backed by the provided service.
func NewUsersAPI(service usersports.Service, responder *apierrors.Responder) UsersAPI {
	if responder == nil {
		responder = apierrors.DefaultResponder
	}
	return UsersAPI{service: service, responder: responder}
}

// Post /v1/users/register
// Create a customer account
func (api *UsersAPI) RegisterUser(c *gin.Context) {
	var payload usermapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, api.responder, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		respondUserServiceError(c, api.responder, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromDomainUser(user))
}

// Get /v1/users/login
// Verify credentials and issue a session token
func (api *UsersAPI) LoginUser(c *gin.Context) {
	username := c.Query("username")
	password := c.Query("password")
	session, err := api.service.Login(c.Request.Context(), username, password)
	if err != nil {
		respondUserServiceError(c, api.responder, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromSession(session))
}
