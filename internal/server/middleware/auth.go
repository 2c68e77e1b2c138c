package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/identity-service/internal/auth/authctx"
	"github.com/skillsenselab/identity-service/internal/auth/token"
	apperrors "github.com/skillsenselab/identity-service/internal/errors"
	"github.com/skillsenselab/identity-service/internal/logger"
)

// TokenVerifier validates a bearer token string and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// Auth returns the identity guard: it extracts the bearer token, verifies
// it, and attaches the resolved identity to the request context. No store
// lookup happens here; the verified subject is trusted as-is.
//
// Missing, malformed, expired, and badly signed tokens all produce the same
// 401 response. The distinction is logged, never surfaced.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	log := logger.WithComponent("auth-guard")

	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthenticated(c)
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			log.Warn("Token rejected", logger.Fields("reason", rejectionKind(err)))
			abortUnauthenticated(c)
			return
		}

		ctx := authctx.Set(c.Request.Context(), authctx.Identity{
			ID:    claims.SubjectID(),
			Email: claims.Email,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// rejectionKind names the verification failure for telemetry.
func rejectionKind(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}

func abortUnauthenticated(c *gin.Context) {
	appErr := apperrors.Unauthorized("")
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
