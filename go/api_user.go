package ezserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/domain"
	userports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/ports"
)

// UserAPI implements account and session endpoints.
type UserAPI struct {
	service userports.Service
}

// NewUserAPI wires dependencies.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// User is the transport-layer account shape. Password is accepted on
// input and never serialized back.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func fromDomainUser(user *userdomain.User) User {
	return User{
		Username: user.Username,
		Name:     user.Name,
		Surname:  user.Surname,
		Email:    user.Email,
		Role:     string(user.Role),
	}
}

func (u User) toDomain() (*userdomain.User, error) {
	user, err := userdomain.NewUser(0, u.Username, u.Password, userdomain.Role(u.Role))
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(u.Name)
	user.Surname = strings.TrimSpace(u.Surname)
	if u.Email != "" {
		user.Email = strings.TrimSpace(u.Email)
	}
	return user, nil
}

// Post /ezelectronics/users
// Register a new account
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload User
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := payload.toDomain()
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, err)
		return
	}
	saved, err := api.service.CreateUser(c.Request.Context(), user)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainUser(saved))
}

// Get /ezelectronics/users/:username
// Fetch an account by username
func (api *UserAPI) GetUserByName(c *gin.Context) {
	username := c.Param("username")
	user, err := api.service.GetByUsername(c.Request.Context(), username)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainUser(user))
}

// Patch /ezelectronics/users/:username
// Update account profile
func (api *UserAPI) UpdateUser(c *gin.Context) {
	username := c.Param("username")
	var payload User
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payload.Username = username
	user, err := payload.toDomain()
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), username, user)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainUser(updated))
}

// Delete /ezelectronics/users/:username
// Remove an account
func (api *UserAPI) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	if strings.TrimSpace(username) == "" {
		respondError(c, http.StatusBadRequest, errors.New("username is required"))
		return
	}
	if err := api.service.Delete(c.Request.Context(), username); err != nil {
		respondUserError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Post /ezelectronics/sessions
// Log in and receive a session token
func (api *UserAPI) Login(c *gin.Context) {
	var payload credentials
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	token, err := api.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Delete /ezelectronics/sessions/current
// Log out the current session
func (api *UserAPI) Logout(c *gin.Context) {
	user, ok := authenticate(c, api.service)
	if !ok {
		return
	}
	api.service.Logout(c.Request.Context(), user.Username)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusOK)
}

func respondUserError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, userports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, userports.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
