package api

import (
	"fmt"
	"net/http"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"
	"ironforge/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ExerciseRequest is the body for creating or replacing an exercise.
type ExerciseRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	MuscleGroup      string `json:"muscleGroup"`
	Equipment        string `json:"equipment"`
	Category         string `json:"category"`
	ExecutionTechnic string `json:"executionTechnic"`
	Difficulty       string `json:"difficulty" binding:"omitempty,oneof=Novice Medium Advanced"`
	VideoURL         string `json:"videoUrl" binding:"omitempty,url"`
}

func (r ExerciseRequest) input() service.ExerciseInput {
	return service.ExerciseInput{
		Name:             r.Name,
		Description:      r.Description,
		MuscleGroup:      r.MuscleGroup,
		Equipment:        r.Equipment,
		Category:         r.Category,
		ExecutionTechnic: r.ExecutionTechnic,
		Difficulty:       r.Difficulty,
		VideoURL:         r.VideoURL,
	}
}

type ListExercisesQuery struct {
	MuscleGroup     string `form:"muscleGroup"`
	Equipment       string `form:"equipment"`
	Search          string `form:"q"`
	IncludeArchived bool   `form:"includeArchived"`
}

// ReorderRequest lists ids in their new order.
type ReorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type MediaUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType" binding:"required"`
}

type MediaUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"` // report back on confirm
	ExpiresAt time.Time `json:"expiresAt"`
}

type MediaConfirmRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType" binding:"required"`
}

type UploadResponse struct {
	ID          string    `json:"id"`
	ExerciseID  string    `json:"exerciseId"`
	FileName    string    `json:"fileName,omitempty"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"ownerId"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	MuscleGroup      string    `json:"muscleGroup,omitempty"`
	Equipment        string    `json:"equipment,omitempty"`
	Category         string    `json:"category,omitempty"`
	ExecutionTechnic string    `json:"executionTechnic,omitempty"`
	Difficulty       string    `json:"difficulty,omitempty"`
	VideoURL         string    `json:"videoUrl,omitempty"`
	HasMedia         bool      `json:"hasMedia"`
	IsArchived       bool      `json:"isArchived"`
	Position         int       `json:"position"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:               ex.ID.Hex(),
		OwnerID:          ex.OwnerID.Hex(),
		Name:             ex.Name,
		Description:      ex.Description,
		MuscleGroup:      ex.MuscleGroup,
		Equipment:        ex.Equipment,
		Category:         ex.Category,
		ExecutionTechnic: ex.ExecutionTechnic,
		Difficulty:       ex.Difficulty,
		VideoURL:         ex.VideoURL,
		HasMedia:         ex.MediaKey != "",
		IsArchived:       ex.IsArchived,
		Position:         ex.Position,
		CreatedAt:        ex.CreatedAt,
		UpdatedAt:        ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// CreateExercise godoc
// @Summary Create a new exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), userID, req.input())
	if err != nil {
		respondError(c, err, "Failed to create exercise.")
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises godoc
// @Summary List the user's exercise catalog
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param muscleGroup query string false "Muscle group"
// @Param equipment query string false "Equipment"
// @Param q query string false "Name search"
// @Param includeArchived query bool false "Include archived exercises"
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	var q ListExercisesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), userID, repository.ExerciseFilter{
		MuscleGroup:     q.MuscleGroup,
		Equipment:       q.Equipment,
		Search:          q.Search,
		IncludeArchived: q.IncludeArchived,
	})
	if err != nil {
		respondError(c, err, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	exerciseID, ok := idParam(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), userID, exerciseID)
	if err != nil {
		respondError(c, err, "Failed to retrieve exercise.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
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

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), userID, exerciseID, req.input())
	if err != nil {
		respondError(c, err, "Failed to update exercise.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	exerciseID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), userID, exerciseID); err != nil {
		respondError(c, err, "Failed to delete exercise.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ArchiveExercise and UnarchiveExercise toggle catalog visibility.
func (h *ExerciseHandler) ArchiveExercise(c *gin.Context)   { h.setArchived(c, true) }
func (h *ExerciseHandler) UnarchiveExercise(c *gin.Context) { h.setArchived(c, false) }

func (h *ExerciseHandler) setArchived(c *gin.Context, archived bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	exerciseID, ok := idParam(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.SetArchived(c.Request.Context(), userID, exerciseID, archived)
	if err != nil {
		respondError(c, err, "Failed to update exercise.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) ReorderExercises(c *gin.Context) {
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

	if err := h.exerciseService.ReorderExercises(c.Request.Context(), userID, ids); err != nil {
		respondError(c, err, "Failed to reorder exercises.")
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestMediaUpload godoc
// @Summary Get a presigned URL for uploading exercise media
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param request body MediaUploadRequest true "File details"
// @Success 200 {object} MediaUploadResponse
// @Failure 415 {object} gin.H "Not an image or video"
// @Router /exercises/{id}/media/upload-url [post]
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
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

	upload, err := h.exerciseService.RequestMediaUpload(c.Request.Context(), userID, exerciseID, req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err, "Failed to prepare upload.")
		return
	}
	c.JSON(http.StatusOK, MediaUploadResponse{
		UploadURL: upload.UploadURL,
		ObjectKey: upload.ObjectKey,
		ExpiresAt: upload.ExpiresAt,
	})
}

func (h *ExerciseHandler) ConfirmMediaUpload(c *gin.Context) {
	var req MediaConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
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

	upload, err := h.exerciseService.ConfirmMediaUpload(c.Request.Context(), userID, exerciseID, req.ObjectKey, req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err, "Failed to confirm upload.")
		return
	}
	c.JSON(http.StatusCreated, UploadResponse{
		ID:          upload.ID.Hex(),
		ExerciseID:  upload.ExerciseID.Hex(),
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Size:        upload.Size,
		UploadedAt:  upload.UploadedAt,
	})
}

func (h *ExerciseHandler) GetMedia(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	exerciseID, ok := idParam(c, "id")
	if !ok {
		return
	}

	url, err := h.exerciseService.GetMediaURL(c.Request.Context(), userID, exerciseID)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to get media for exercise %s.", exerciseID.Hex()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
