package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/identity-service/internal/errors"
	"github.com/skillsenselab/identity-service/internal/server"
	"github.com/skillsenselab/identity-service/internal/user"
	"github.com/skillsenselab/identity-service/internal/validation"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=255"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse carries a freshly issued access token, optionally with
// the newly registered user.
type SessionResponse struct {
	AccessToken string     `json:"accessToken"`
	User        *user.View `json:"user,omitempty"`
}

// Handler exposes the auth service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates the auth HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Mount registers the auth routes on the engine. None of them require
// authentication.
func (h *Handler) Mount(r gin.IRouter) {
	grp := r.Group("/auth")
	grp.POST("/register", h.register)
	grp.POST("/login", h.login)
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	u, tok, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	view := u.View()
	server.RespondCreated(c, SessionResponse{AccessToken: tok, User: &view})
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	tok, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, SessionResponse{AccessToken: tok})
}

// bindAndValidate decodes the JSON body and runs struct validation, so
// malformed input never reaches the auth core.
func bindAndValidate(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.Validation("invalid request body").WithCause(err)
	}
	return validation.Validate(req)
}
