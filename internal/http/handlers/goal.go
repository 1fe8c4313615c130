package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitbridge/fitbridge-backend/internal/http/response"
	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
	"github.com/fitbridge/fitbridge-backend/internal/services"
)

type GoalHandler struct {
	goalService services.GoalService
}

func NewGoalHandler(goalService services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GET /goals?user_id=&limit=&offset=
func (gh *GoalHandler) List(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := targetUserID(c, requester)
	if !ok {
		return
	}
	limit, offset := pagination(c)

	goals, err := gh.goalService.List(c.Request.Context(), requester, targetID, limit, offset)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"goals": goals})
}

// POST /goals?user_id=
func (gh *GoalHandler) Create(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := targetUserID(c, requester)
	if !ok {
		return
	}

	var input services.GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}

	goal, err := gh.goalService.Create(c.Request.Context(), requester, targetID, input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"goal": goal})
}

// PATCH /goals/:id
func (gh *GoalHandler) Update(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("invalid goal id"))
		return
	}

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}

	goal, err := gh.goalService.Update(c.Request.Context(), requester, goalID, updates)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"goal": goal})
}

// DELETE /goals/:id
func (gh *GoalHandler) Delete(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("invalid goal id"))
		return
	}

	if err := gh.goalService.Delete(c.Request.Context(), requester, goalID); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
