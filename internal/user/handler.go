package user

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/identity-service/internal/auth/authctx"
	"github.com/skillsenselab/identity-service/internal/auth/password"
	"github.com/skillsenselab/identity-service/internal/errors"
	"github.com/skillsenselab/identity-service/internal/server"
	"github.com/skillsenselab/identity-service/internal/validation"
)

// UpdateRequest is the body of PATCH /users/me. All fields are optional.
type UpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// Handler exposes identity-scoped user CRUD. Every route sits behind the
// auth guard; the handler resolves the caller from the request context and
// performs its own store lookups.
type Handler struct {
	store  Store
	hasher password.Hasher
}

// NewHandler creates the user HTTP handler.
func NewHandler(store Store, hasher password.Hasher) *Handler {
	return &Handler{store: store, hasher: hasher}
}

// Mount registers the user routes on the given (already guarded) router group.
func (h *Handler) Mount(r gin.IRouter) {
	grp := r.Group("/users")
	grp.GET("/me", h.getMe)
	grp.GET("/:id", h.getByID)
	grp.PATCH("/me", h.updateMe)
	grp.DELETE("/me", h.deleteMe)
}

func (h *Handler) getMe(c *gin.Context) {
	identity, err := authctx.GetOrError(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, errors.Unauthorized(""))
		return
	}

	u, err := h.store.FindByID(c.Request.Context(), identity.ID)
	if err != nil {
		server.RespondWithError(c, errors.DatabaseError(err))
		return
	}
	if u == nil {
		// Token subject no longer exists (account removed after issuance).
		server.RespondWithError(c, errors.NotFound("user", ""))
		return
	}

	server.RespondOK(c, u.View())
}

func (h *Handler) getByID(c *gin.Context) {
	id := c.Param("id")

	u, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, errors.DatabaseError(err))
		return
	}
	if u == nil {
		server.RespondWithError(c, errors.NotFound("user", id))
		return
	}

	server.RespondOK(c, u.View())
}

func (h *Handler) updateMe(c *gin.Context) {
	identity, err := authctx.GetOrError(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, errors.Unauthorized(""))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	patch := Patch{Name: req.Name}
	if req.Password != nil {
		hash, err := h.hasher.Hash(*req.Password)
		if err != nil {
			server.RespondWithError(c, errors.Validation(err.Error()))
			return
		}
		patch.PasswordHash = &hash
	}

	u, err := h.store.Update(c.Request.Context(), identity.ID, patch)
	if err != nil {
		server.RespondWithError(c, errors.DatabaseError(err))
		return
	}
	if u == nil {
		server.RespondWithError(c, errors.NotFound("user", ""))
		return
	}

	server.RespondOK(c, u.View())
}

func (h *Handler) deleteMe(c *gin.Context) {
	identity, err := authctx.GetOrError(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, errors.Unauthorized(""))
		return
	}

	if err := h.store.Delete(c.Request.Context(), identity.ID); err != nil {
		server.RespondWithError(c, errors.DatabaseError(err))
		return
	}

	server.RespondNoContent(c)
}
