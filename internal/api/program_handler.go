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

type ProgramHandler struct {
	programService service.ProgramService
}

func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

type ProgramExerciseDTO struct {
	ExerciseID   string            `json:"exerciseId" binding:"required"`
	Sets         int               `json:"sets"`
	Reps         string            `json:"reps"`
	TargetWeight float64           `json:"targetWeight,omitempty"`
	Unit         domain.WeightUnit `json:"unit,omitempty"`
	RestSeconds  int               `json:"restSeconds,omitempty" binding:"gte=0"`
	Notes        string            `json:"notes,omitempty"`
}

type ProgramDayDTO struct {
	Name      string               `json:"name"`
	Exercises []ProgramExerciseDTO `json:"exercises" binding:"dive"`
}

type ProgramRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Days        []ProgramDayDTO `json:"days" binding:"dive"`
}

type ProgramResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	IsActive    bool            `json:"isActive"`
	Days        []ProgramDayDTO `json:"days"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func MapProgramToResponse(p *domain.Program) ProgramResponse {
	days := make([]ProgramDayDTO, len(p.Days))
	for i, d := range p.Days {
		exercises := make([]ProgramExerciseDTO, len(d.Exercises))
		for j, ex := range d.Exercises {
			exercises[j] = ProgramExerciseDTO{
				ExerciseID:   ex.ExerciseID.Hex(),
				Sets:         ex.Sets,
				Reps:         ex.Reps,
				TargetWeight: ex.TargetWeight,
				Unit:         ex.Unit,
				RestSeconds:  ex.RestSeconds,
				Notes:        ex.Notes,
			}
		}
		days[i] = ProgramDayDTO{Name: d.Name, Exercises: exercises}
	}
	return ProgramResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		Days:        days,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (h *ProgramHandler) bindProgram(c *gin.Context) (service.ProgramInput, bool) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return service.ProgramInput{}, false
	}

	days := make([]domain.ProgramDay, len(req.Days))
	for i, d := range req.Days {
		exercises := make([]domain.ProgramExercise, len(d.Exercises))
		for j, ex := range d.Exercises {
			id, err := primitive.ObjectIDFromHex(ex.ExerciseID)
			if err != nil {
				abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid exercise ID format: %q", ex.ExerciseID))
				return service.ProgramInput{}, false
			}
			exercises[j] = domain.ProgramExercise{
				ExerciseID:   id,
				Sets:         ex.Sets,
				Reps:         ex.Reps,
				TargetWeight: ex.TargetWeight,
				Unit:         ex.Unit,
				RestSeconds:  ex.RestSeconds,
				Notes:        ex.Notes,
			}
		}
		days[i] = domain.ProgramDay{Name: d.Name, Exercises: exercises}
	}
	return service.ProgramInput{Name: req.Name, Description: req.Description, Days: days}, true
}

func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	in, ok := h.bindProgram(c)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	program, err := h.programService.CreateProgram(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, "Failed to create program.")
		return
	}
	c.JSON(http.StatusCreated, MapProgramToResponse(program))
}

func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	programs, err := h.programService.ListPrograms(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve programs.")
		return
	}
	resp := make([]ProgramResponse, len(programs))
	for i := range programs {
		resp[i] = MapProgramToResponse(&programs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProgramHandler) GetProgram(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	programID, ok := idParam(c, "id")
	if !ok {
		return
	}
	program, err := h.programService.GetProgram(c.Request.Context(), userID, programID)
	if err != nil {
		respondError(c, err, "Failed to retrieve program.")
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	in, ok := h.bindProgram(c)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	programID, ok := idParam(c, "id")
	if !ok {
		return
	}
	program, err := h.programService.UpdateProgram(c.Request.Context(), userID, programID, in)
	if err != nil {
		respondError(c, err, "Failed to update program.")
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

func (h *ProgramHandler) ActivateProgram(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	programID, ok := idParam(c, "id")
	if !ok {
		return
	}
	program, err := h.programService.ActivateProgram(c.Request.Context(), userID, programID)
	if err != nil {
		respondError(c, err, "Failed to activate program.")
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	programID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.programService.DeleteProgram(c.Request.Context(), userID, programID); err != nil {
		respondError(c, err, "Failed to delete program.")
		return
	}
	c.Status(http.StatusNoContent)
}
