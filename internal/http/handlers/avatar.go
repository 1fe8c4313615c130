package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitbridge/fitbridge-backend/internal/http/response"
	"github.com/fitbridge/fitbridge-backend/internal/pkg/ctxutil"
	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
	"github.com/fitbridge/fitbridge-backend/internal/services"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
)

// Uploads are read through a hard cap slightly above the service limit so an
// oversized body fails validation instead of exhausting memory.
const avatarUploadReadLimit = 6 << 20

type AvatarHandler struct {
	avatarService services.AvatarService
}

func NewAvatarHandler(avatarService services.AvatarService) *AvatarHandler {
	return &AvatarHandler{avatarService: avatarService}
}

// GET /avatar
func (ah *AvatarHandler) GetAvatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	url, err := ah.avatarService.Resolve(c.Request.Context(), user)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"avatar_url": url})
}

// POST /avatar/upload (multipart field "avatar", or raw body)
func (ah *AvatarHandler) Upload(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	data, contentType, err := readAvatarPayload(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}

	url, err := ah.avatarService.Upload(c.Request.Context(), user, data, contentType)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"avatar_url": url})
}

// DELETE /avatar
func (ah *AvatarHandler) Remove(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := ah.avatarService.Remove(c.Request.Context(), user); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"avatar_url": ah.avatarService.GravatarURL(user.Email)})
}

// POST /avatar/gravatar
func (ah *AvatarHandler) SetGravatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	url, err := ah.avatarService.UseGravatar(c.Request.Context(), user)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"avatar_url": url})
}

func readAvatarPayload(c *gin.Context) ([]byte, string, error) {
	if file, err := c.FormFile("avatar"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, "", fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, avatarUploadReadLimit))
		if err != nil {
			return nil, "", fmt.Errorf("read upload: %w", err)
		}
		return data, file.Header.Get("Content-Type"), nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, avatarUploadReadLimit))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return data, c.ContentType(), nil
}

func currentUser(c *gin.Context) (*types.User, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthenticated,
			fmt.Errorf("no authenticated user"))
		return nil, false
	}
	return rd.User, true
}
