package api

import (
	"net/http"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"
	"ironforge/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type GoalRequest struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description"`
	Category     domain.GoalCategory `json:"category" binding:"omitempty,oneof=strength bodyweight cardio habit custom"`
	ExerciseID   *string             `json:"exerciseId"`
	StartValue   float64             `json:"startValue"`
	CurrentValue *float64            `json:"currentValue"`
	TargetValue  float64             `json:"targetValue"`
	Unit         string              `json:"unit"`
	Deadline     *time.Time          `json:"deadline"`
}

type ProgressRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

type ListGoalsQuery struct {
	Status   domain.GoalStatus   `form:"status" binding:"omitempty,oneof=active completed archived"`
	Category domain.GoalCategory `form:"category"`
}

type GoalResponse struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	Category        domain.GoalCategory `json:"category"`
	ExerciseID      *string             `json:"exerciseId,omitempty"`
	StartValue      float64             `json:"startValue"`
	CurrentValue    float64             `json:"currentValue"`
	TargetValue     float64             `json:"targetValue"`
	Unit            string              `json:"unit,omitempty"`
	ProgressPercent float64             `json:"progressPercent"`
	Deadline        *time.Time          `json:"deadline,omitempty"`
	Status          domain.GoalStatus   `json:"status"`
	Position        int                 `json:"position"`
	CompletedAt     *time.Time          `json:"completedAt,omitempty"`
	ArchivedAt      *time.Time          `json:"archivedAt,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func MapGoalToResponse(g *domain.Goal) GoalResponse {
	resp := GoalResponse{
		ID:              g.ID.Hex(),
		Title:           g.Title,
		Description:     g.Description,
		Category:        g.Category,
		StartValue:      g.StartValue,
		CurrentValue:    g.CurrentValue,
		TargetValue:     g.TargetValue,
		Unit:            g.Unit,
		ProgressPercent: g.ProgressPercent(),
		Deadline:        g.Deadline,
		Status:          g.Status,
		Position:        g.Position,
		CompletedAt:     g.CompletedAt,
		ArchivedAt:      g.ArchivedAt,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
	if g.ExerciseID != nil && *g.ExerciseID != primitive.NilObjectID {
		hex := g.ExerciseID.Hex()
		resp.ExerciseID = &hex
	}
	return resp
}

func (h *GoalHandler) bindGoal(c *gin.Context) (service.GoalInput, bool) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return service.GoalInput{}, false
	}
	exerciseID, ok := optionalID(c, req.ExerciseID)
	if !ok {
		return service.GoalInput{}, false
	}
	return service.GoalInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		ExerciseID:   exerciseID,
		StartValue:   req.StartValue,
		CurrentValue: req.CurrentValue,
		TargetValue:  req.TargetValue,
		Unit:         req.Unit,
		Deadline:     req.Deadline,
	}, true
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	in, ok := h.bindGoal(c)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, "Failed to create goal.")
		return
	}
	c.JSON(http.StatusCreated, MapGoalToResponse(goal))
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	var q ListGoalsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID, repository.GoalFilter{Status: q.Status, Category: q.Category})
	if err != nil {
		respondError(c, err, "Failed to retrieve goals.")
		return
	}
	resp := make([]GoalResponse, len(goals))
	for i := range goals {
		resp[i] = MapGoalToResponse(&goals[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	h.withGoal(c, "Failed to retrieve goal.", func(userID, goalID primitive.ObjectID) (*domain.Goal, error) {
		return h.goalService.GetGoal(c.Request.Context(), userID, goalID)
	})
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	in, ok := h.bindGoal(c)
	if !ok {
		return
	}
	h.withGoal(c, "Failed to update goal.", func(userID, goalID primitive.ObjectID) (*domain.Goal, error) {
		return h.goalService.UpdateGoal(c.Request.Context(), userID, goalID, in)
	})
}

func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.withGoal(c, "Failed to update progress.", func(userID, goalID primitive.ObjectID) (*domain.Goal, error) {
		return h.goalService.UpdateProgress(c.Request.Context(), userID, goalID, *req.Value)
	})
}

func (h *GoalHandler) ArchiveGoal(c *gin.Context) {
	h.withGoal(c, "Failed to archive goal.", func(userID, goalID primitive.ObjectID) (*domain.Goal, error) {
		return h.goalService.ArchiveGoal(c.Request.Context(), userID, goalID)
	})
}

func (h *GoalHandler) UnarchiveGoal(c *gin.Context) {
	h.withGoal(c, "Failed to unarchive goal.", func(userID, goalID primitive.ObjectID) (*domain.Goal, error) {
		return h.goalService.UnarchiveGoal(c.Request.Context(), userID, goalID)
	})
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, goalID); err != nil {
		respondError(c, err, "Failed to delete goal.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) ReorderGoals(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	ids, ok := parseIDs(c, req.IDs)
	if !ok {
		return
	}
	if err := h.goalService.ReorderGoals(c.Request.Context(), userID, ids); err != nil {
		respondError(c, err, "Failed to reorder goals.")
		return
	}
	c.Status(http.StatusNoContent)
}

// withGoal resolves the caller and :id, runs fn and writes the goal.
func (h *GoalHandler) withGoal(c *gin.Context, failure string, fn func(userID, goalID primitive.ObjectID) (*domain.Goal, error)) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}
	goal, err := fn(userID, goalID)
	if err != nil {
		respondError(c, err, failure)
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}
