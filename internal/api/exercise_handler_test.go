package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createExercise(t *testing.T, s *testServer, body gin.H) ExerciseResponse {
	t.Helper()
	w := s.do(http.MethodPost, "/api/v1/exercises", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[ExerciseResponse](t, w)
}

func TestExerciseCRUD(t *testing.T) {
	s := newTestServer(t)

	squat := createExercise(t, s, gin.H{"name": "Back Squat", "muscleGroup": "legs", "equipment": "barbell", "difficulty": "Medium"})
	createExercise(t, s, gin.H{"name": "Bench Press", "muscleGroup": "chest", "equipment": "barbell"})
	createExercise(t, s, gin.H{"name": "Goblet Squat", "muscleGroup": "legs", "equipment": "dumbbell"})

	w := s.do(http.MethodGet, "/api/v1/exercises?muscleGroup=legs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ExerciseResponse](t, w), 2)

	w = s.do(http.MethodGet, "/api/v1/exercises?q=SQUAT&equipment=barbell", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[[]ExerciseResponse](t, w)
	require.Len(t, found, 1)
	assert.Equal(t, squat.ID, found[0].ID)

	path := "/api/v1/exercises/" + squat.ID
	w = s.do(http.MethodPut, path, gin.H{"name": "High Bar Squat", "muscleGroup": "legs", "equipment": "barbell"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "High Bar Squat", decode[ExerciseResponse](t, w).Name)

	w = s.do(http.MethodPost, path+"/archive", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/exercises", nil)
	assert.Len(t, decode[[]ExerciseResponse](t, w), 2)
	w = s.do(http.MethodGet, "/api/v1/exercises?includeArchived=true", nil)
	assert.Len(t, decode[[]ExerciseResponse](t, w), 3)
	w = s.do(http.MethodPost, path+"/unarchive", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/exercises", gin.H{"name": "Row", "difficulty": "Elite"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPost, "/api/v1/exercises", gin.H{"name": "Row", "videoUrl": "not a url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReorderExercises(t *testing.T) {
	s := newTestServer(t)
	a := createExercise(t, s, gin.H{"name": "A"})
	b := createExercise(t, s, gin.H{"name": "B"})

	w := s.do(http.MethodPut, "/api/v1/exercises/reorder", gin.H{"ids": []string{b.ID, a.ID}})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/exercises", nil)
	list := decode[[]ExerciseResponse](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name)

	w = s.do(http.MethodPut, "/api/v1/exercises/reorder", gin.H{"ids": []string{"zzz"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExerciseMediaFlow(t *testing.T) {
	s := newTestServer(t)
	ex := createExercise(t, s, gin.H{"name": "Deadlift"})
	path := "/api/v1/exercises/" + ex.ID + "/media"

	w := s.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, path+"/upload-url", gin.H{"fileName": "notes.pdf", "contentType": "application/pdf"})
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = s.do(http.MethodPost, path+"/upload-url", gin.H{"fileName": "pull.MP4", "contentType": "video/mp4"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	up := decode[MediaUploadResponse](t, w)
	assert.True(t, strings.HasSuffix(up.ObjectKey, ".mp4"), up.ObjectKey)
	assert.Contains(t, up.UploadURL, up.ObjectKey)

	confirm := gin.H{"objectKey": up.ObjectKey, "fileName": "pull.MP4", "contentType": "video/mp4"}
	w = s.do(http.MethodPost, path+"/confirm", confirm)
	assert.Equal(t, http.StatusConflict, w.Code)

	s.storage.put(up.ObjectKey, 2048)
	w = s.do(http.MethodPost, path+"/confirm", confirm)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(2048), decode[UploadResponse](t, w).Size)

	w = s.do(http.MethodPost, path+"/confirm", gin.H{"objectKey": "exercises/someone-else/x.mp4", "contentType": "video/mp4"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://storage.test/get/"+up.ObjectKey, decode[map[string]string](t, w)["url"])

	w = s.do(http.MethodGet, "/api/v1/exercises/"+ex.ID, nil)
	assert.True(t, decode[ExerciseResponse](t, w).HasMedia)
}
