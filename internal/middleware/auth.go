package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/rs/zerolog/log"
)

const ownerIDKey = "ownerID"

// TokenParser resolves a bearer token to the owner id it was issued for.
type TokenParser interface {
	ParseToken(token string) (uint, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" header
// and stores the owner id on the context.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}
		ownerID, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("RequireAuth: Rejected token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}
		ctx.Set(ownerIDKey, ownerID)
		ctx.Next()
	}
}

// OwnerID returns the id stored by RequireAuth.
func OwnerID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(ownerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
