package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository/memory"
	"ironforge/fitness-api/internal/service"
	"ironforge/fitness-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

// memStorage stands in for the bucket. put simulates a client PUT to a presigned URL.
type memStorage struct {
	mu      sync.Mutex
	objects map[string]int64
}

func (m *memStorage) put(key string, size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = size
}

func (m *memStorage) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/put/" + key, nil
}

func (m *memStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/get/" + key, nil
}

func (m *memStorage) ObjectSize(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	size, ok := m.objects[key]
	if !ok {
		return 0, storage.ErrObjectNotFound
	}
	return size, nil
}

func (m *memStorage) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	storage *memStorage
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	exerciseRepo := memory.NewExerciseRepository()
	programRepo := memory.NewProgramRepository()
	files := &memStorage{objects: map[string]int64{}}
	auth := service.NewAuthService(memory.NewUserRepository(), testSecret, time.Hour)

	router := gin.New()
	SetupRoutes(router, testSecret, Services{
		Auth:      auth,
		Goals:     service.NewGoalService(memory.NewGoalRepository(), exerciseRepo),
		Exercises: service.NewExerciseService(exerciseRepo, memory.NewUploadRepository(), files),
		Programs:  service.NewProgramService(programRepo, exerciseRepo),
		Workouts:  service.NewWorkoutService(memory.NewWorkoutRepository(), exerciseRepo, programRepo),
		Equipment: service.NewEquipmentService(memory.NewEquipmentRepository(), domain.UnitLb),
	})

	s := &testServer{t: t, router: router, storage: files}
	s.token = s.login("lifter@example.com", "")
	return s
}

// login registers email and returns a bearer token for it.
func (s *testServer) login(email string, unit domain.WeightUnit) string {
	s.t.Helper()
	w := s.request(http.MethodPost, "/api/v1/auth/register", gin.H{
		"name": "Lifter", "email": email, "password": "password123", "preferredUnit": unit,
	}, "")
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(http.MethodPost, "/api/v1/auth/login", gin.H{"email": email, "password": "password123"}, "")
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp LoginResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (s *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// do sends an authenticated request as the default user.
func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	return s.request(method, path, body, s.token)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
