package api

import (
	"errors"
	"log"
	"net/http"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// errorStatus maps service and domain errors to HTTP status codes.
var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrGoalNotFound, http.StatusNotFound},
	{service.ErrExerciseNotFound, http.StatusNotFound},
	{service.ErrProgramNotFound, http.StatusNotFound},
	{service.ErrWorkoutNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrNoMedia, http.StatusNotFound},
	{domain.ErrBarbellNotFound, http.StatusNotFound},
	{domain.ErrPlateNotFound, http.StatusNotFound},

	{service.ErrGoalValidation, http.StatusBadRequest},
	{service.ErrValidationFailed, http.StatusBadRequest},
	{service.ErrProgramValidation, http.StatusBadRequest},
	{service.ErrWorkoutValidation, http.StatusBadRequest},
	{service.ErrInvalidReorder, http.StatusBadRequest},
	{service.ErrMediaKeyMismatch, http.StatusBadRequest},
	{domain.ErrInvalidWeight, http.StatusBadRequest},
	{domain.ErrInvalidUnit, http.StatusBadRequest},

	{service.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
	{service.ErrGoalArchived, http.StatusConflict},
	{service.ErrMediaNotUploaded, http.StatusConflict},
	{service.ErrNoActiveBarbell, http.StatusConflict},
	{service.ErrUserAlreadyExists, http.StatusConflict},
}

// respondError answers with the status mapped for err. Unmapped errors are
// logged and reported as 500 with the generic message.
func respondError(c *gin.Context, err error, message string) {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			abortWithError(c, m.status, err.Error())
			return
		}
	}
	log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
	abortWithError(c, http.StatusInternalServerError, message)
}
