package api

import (
	"fmt"
	"net/http"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
	authService    service.AuthService
}

func NewWorkoutHandler(workoutService service.WorkoutService, authService service.AuthService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, authService: authService}
}

type SetLogDTO struct {
	Reps     int               `json:"reps"`
	Weight   float64           `json:"weight"`
	Unit     domain.WeightUnit `json:"unit"`
	RPE      *float64          `json:"rpe,omitempty" binding:"omitempty,gte=1,lte=10"`
	IsWarmup bool              `json:"isWarmup"`
}

type WorkoutEntryDTO struct {
	ExerciseID string      `json:"exerciseId" binding:"required"`
	Sets       []SetLogDTO `json:"sets" binding:"dive"`
}

type WorkoutRequest struct {
	ProgramID       *string           `json:"programId"`
	Name            string            `json:"name"`
	PerformedAt     *time.Time        `json:"performedAt"`
	DurationMinutes int               `json:"durationMinutes"`
	Notes           string            `json:"notes"`
	Entries         []WorkoutEntryDTO `json:"entries" binding:"required,dive"`
}

type ListWorkoutsQuery struct {
	From time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ProgressQuery struct {
	Unit domain.WeightUnit `form:"unit" binding:"omitempty,oneof=lb kg"`
}

type WorkoutResponse struct {
	ID              string            `json:"id"`
	ProgramID       *string           `json:"programId,omitempty"`
	Name            string            `json:"name"`
	PerformedAt     time.Time         `json:"performedAt"`
	DurationMinutes int               `json:"durationMinutes,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Entries         []WorkoutEntryDTO `json:"entries"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	entries := make([]WorkoutEntryDTO, len(w.Entries))
	for i, e := range w.Entries {
		sets := make([]SetLogDTO, len(e.Sets))
		for j, s := range e.Sets {
			sets[j] = SetLogDTO{Reps: s.Reps, Weight: s.Weight, Unit: s.Unit, RPE: s.RPE, IsWarmup: s.IsWarmup}
		}
		entries[i] = WorkoutEntryDTO{ExerciseID: e.ExerciseID.Hex(), Sets: sets}
	}
	resp := WorkoutResponse{
		ID:              w.ID.Hex(),
		Name:            w.Name,
		PerformedAt:     w.PerformedAt,
		DurationMinutes: w.DurationMinutes,
		Notes:           w.Notes,
		Entries:         entries,
		CreatedAt:       w.CreatedAt,
	}
	if w.ProgramID != nil {
		hex := w.ProgramID.Hex()
		resp.ProgramID = &hex
	}
	return resp
}

func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	programID, ok := optionalID(c, req.ProgramID)
	if !ok {
		return
	}

	in := service.WorkoutInput{
		ProgramID:       programID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		Entries:         make([]domain.WorkoutEntry, len(req.Entries)),
	}
	if req.PerformedAt != nil {
		in.PerformedAt = *req.PerformedAt
	}
	for i, e := range req.Entries {
		exerciseID, err := primitive.ObjectIDFromHex(e.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid exercise ID format: %q", e.ExerciseID))
			return
		}
		sets := make([]domain.SetLog, len(e.Sets))
		for j, s := range e.Sets {
			sets[j] = domain.SetLog{Reps: s.Reps, Weight: s.Weight, Unit: s.Unit, RPE: s.RPE, IsWarmup: s.IsWarmup}
		}
		in.Entries[i] = domain.WorkoutEntry{ExerciseID: exerciseID, Sets: sets}
	}

	workout, err := h.workoutService.LogWorkout(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, "Failed to log workout.")
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// ListWorkouts godoc
// @Summary List logged workouts, newest first
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {array} WorkoutResponse
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	var q ListWorkoutsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID, q.From, q.To)
	if err != nil {
		respondError(c, err, "Failed to retrieve workouts.")
		return
	}
	resp := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		resp[i] = MapWorkoutToResponse(&workouts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	workoutID, ok := idParam(c, "id")
	if !ok {
		return
	}
	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		respondError(c, err, "Failed to retrieve workout.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	workoutID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, workoutID); err != nil {
		respondError(c, err, "Failed to delete workout.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ExerciseProgress returns the progress series for /exercises/:id/progress.
// Without ?unit the user's preferred unit is used.
func (h *WorkoutHandler) ExerciseProgress(c *gin.Context) {
	var q ProgressQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	exerciseID, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	unit := q.Unit
	if unit == "" {
		user, err := h.authService.GetUser(ctx, userID)
		if err != nil {
			respondError(c, err, "Failed to load user.")
			return
		}
		unit = user.PreferredUnit
	}
	if unit == "" {
		unit = domain.UnitLb
	}

	points, err := h.workoutService.ExerciseProgress(ctx, userID, exerciseID, unit)
	if err != nil {
		respondError(c, err, "Failed to load progress.")
		return
	}
	c.JSON(http.StatusOK, points)
}
