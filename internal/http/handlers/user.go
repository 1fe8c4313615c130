package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitbridge/fitbridge-backend/internal/http/response"
	"github.com/fitbridge/fitbridge-backend/internal/pkg/ctxutil"
	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
	"github.com/fitbridge/fitbridge-backend/internal/services"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
)

type UserHandler struct {
	userService   services.UserService
	accessService services.AccessService
	avatarService services.AvatarService
}

func NewUserHandler(userService services.UserService, accessService services.AccessService, avatarService services.AvatarService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		accessService: accessService,
		avatarService: avatarService,
	}
}

type userPayload struct {
	*types.User
	AvatarURL string `json:"avatar_url"`
}

func (uh *UserHandler) present(c *gin.Context, u *types.User) userPayload {
	avatarURL, err := uh.avatarService.Resolve(c.Request.Context(), u)
	if err != nil {
		avatarURL = uh.avatarService.GravatarURL(u.Email)
	}
	return userPayload{User: u, AvatarURL: avatarURL}
}

// GET /me
func (uh *UserHandler) GetMe(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthenticated,
			fmt.Errorf("no authenticated user"))
		return
	}
	response.RespondOK(c, gin.H{"me": uh.present(c, rd.User)})
}

// GET /users/:id
func (uh *UserHandler) GetUser(c *gin.Context) {
	requester, targetID, ok := uh.resolveTarget(c)
	if !ok {
		return
	}

	target, err := uh.userService.GetByID(c.Request.Context(), targetID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}

	allowed, err := uh.accessService.CanAccess(c.Request.Context(), requester, targetID)
	if err != nil {
		response.RespondAppError(c, apierr.Internal(err))
		return
	}
	if !allowed {
		response.RespondError(c, http.StatusForbidden, apierr.CodeForbidden,
			fmt.Errorf("no access to this user"))
		return
	}

	response.RespondOK(c, gin.H{"user": uh.present(c, target)})
}

// PATCH /users/:id
// body: { "display_name": "...", "notes": "..." }
func (uh *UserHandler) UpdateUser(c *gin.Context) {
	requester, targetID, ok := uh.resolveTarget(c)
	if !ok {
		return
	}

	var req struct {
		DisplayName *string `json:"display_name"`
		Notes       *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}
	if req.DisplayName == nil && req.Notes == nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("no profile changes provided"))
		return
	}

	if _, err := uh.userService.GetByID(c.Request.Context(), targetID); err != nil {
		response.RespondAppError(c, err)
		return
	}
	allowed, err := uh.accessService.CanAccess(c.Request.Context(), requester, targetID)
	if err != nil {
		response.RespondAppError(c, apierr.Internal(err))
		return
	}
	if !allowed {
		response.RespondError(c, http.StatusForbidden, apierr.CodeForbidden,
			fmt.Errorf("no access to this user"))
		return
	}

	updated, err := uh.userService.UpdateProfile(c.Request.Context(), targetID, req.DisplayName, req.Notes)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": uh.present(c, updated)})
}

// POST /admin/users/:id/role
// body: { "role": "TRAINER" }
func (uh *UserHandler) PromoteRole(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("invalid user id"))
		return
	}

	var req struct {
		Role types.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}

	updated, err := uh.userService.PromoteRole(c.Request.Context(), targetID, req.Role)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": uh.present(c, updated)})
}

// GET /clients
func (uh *UserHandler) ListClients(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthenticated,
			fmt.Errorf("no authenticated user"))
		return
	}

	ids, err := uh.accessService.ListClientIDs(c.Request.Context(), rd.User)
	if err != nil {
		response.RespondAppError(c, apierr.Internal(err))
		return
	}

	clients := make([]userPayload, 0, len(ids))
	for _, id := range ids {
		client, err := uh.userService.GetByID(c.Request.Context(), id)
		if err != nil {
			continue
		}
		clients = append(clients, uh.present(c, client))
	}
	response.RespondOK(c, gin.H{"clients": clients})
}

func (uh *UserHandler) resolveTarget(c *gin.Context) (*types.User, uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthenticated,
			fmt.Errorf("no authenticated user"))
		return nil, uuid.Nil, false
	}
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("invalid user id"))
		return nil, uuid.Nil, false
	}
	return rd.User, targetID, true
}
