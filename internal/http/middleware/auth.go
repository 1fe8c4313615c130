package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fitbridge/fitbridge-backend/internal/auth"
	"github.com/fitbridge/fitbridge-backend/internal/http/response"
	"github.com/fitbridge/fitbridge-backend/internal/pkg/ctxutil"
	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
	"github.com/fitbridge/fitbridge-backend/internal/services"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
)

type AuthMiddleware struct {
	log         *logger.Logger
	verifier    *auth.Verifier
	userService services.UserService
}

func NewAuthMiddleware(log *logger.Logger, verifier *auth.Verifier, userService services.UserService) *AuthMiddleware {
	middlewareLog := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLog, verifier: verifier, userService: userService}
}

// RequireAuth verifies the bearer credential, resolves the caller to a user
// row and stashes both on the request context. Tokens are accepted from the
// Authorization header only.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := extractBearerToken(c)
		if rawToken == "" {
			response.RespondError(c, http.StatusUnauthorized, apierr.CodeInvalidCredential,
				fmt.Errorf("missing bearer token"))
			c.Abort()
			return
		}

		ctx := c.Request.Context()

		identity, err := am.verifier.Verify(ctx, rawToken)
		if err != nil {
			am.log.Debug("Token verification rejected", "error", err)
			response.RespondAppError(c, err)
			c.Abort()
			return
		}

		user, err := am.userService.ResolveOrCreate(ctx, identity.SubjectID, identity.Email)
		if err != nil {
			response.RespondAppError(c, err)
			c.Abort()
			return
		}

		ctx = ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
			Identity: identity,
			User:     user,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole gates a route group on the resolved user's role. It assumes
// RequireAuth already ran.
func (am *AuthMiddleware) RequireRole(role types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.User == nil {
			response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthenticated,
				fmt.Errorf("no authenticated user"))
			c.Abort()
			return
		}
		if rd.User.Role != role {
			response.RespondError(c, http.StatusForbidden, apierr.CodeForbidden,
				fmt.Errorf("requires %s role", role))
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
