package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitbridge/fitbridge-backend/internal/http/response"
	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
	"github.com/fitbridge/fitbridge-backend/internal/services"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
)

type WorkoutHandler struct {
	workoutService services.WorkoutService
}

func NewWorkoutHandler(workoutService services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// GET /workouts?user_id=&limit=&offset=
func (wh *WorkoutHandler) List(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := targetUserID(c, requester)
	if !ok {
		return
	}
	limit, offset := pagination(c)

	workouts, err := wh.workoutService.List(c.Request.Context(), requester, targetID, limit, offset)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"workouts": workouts})
}

// POST /workouts?user_id=
func (wh *WorkoutHandler) Create(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := targetUserID(c, requester)
	if !ok {
		return
	}

	var input services.WorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}

	workout, err := wh.workoutService.Create(c.Request.Context(), requester, targetID, input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"workout": workout})
}

// PATCH /workouts/:id
func (wh *WorkoutHandler) Update(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	workoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("invalid workout id"))
		return
	}

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}

	workout, err := wh.workoutService.Update(c.Request.Context(), requester, workoutID, updates)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"workout": workout})
}

// DELETE /workouts/:id
func (wh *WorkoutHandler) Delete(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	workoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("invalid workout id"))
		return
	}

	if err := wh.workoutService.Delete(c.Request.Context(), requester, workoutID); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// targetUserID reads ?user_id=, defaulting to the requester. The access layer
// decides whether the requester may act on someone else's data.
func targetUserID(c *gin.Context, requester *types.User) (uuid.UUID, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return requester.ID, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest,
			fmt.Errorf("invalid user_id"))
		return uuid.Nil, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	return limit, offset
}
