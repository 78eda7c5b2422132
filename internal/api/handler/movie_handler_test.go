package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/models"
	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMovieService mocks the MovieService interface
type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) GetAll(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieService) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) Create(ctx context.Context, title, description string) (*models.Movie, error) {
	args := m.Called(ctx, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, id int64, title, description string) (*models.Movie, error) {
	args := m.Called(ctx, id, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) Patch(ctx context.Context, id int64, title, description *string) (*models.Movie, error) {
	args := m.Called(ctx, id, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovieService) SetPoster(ctx context.Context, id int64, path string) (*models.Movie, error) {
	args := m.Called(ctx, id, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) AverageRating(ctx context.Context, id int64) (*float64, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

const testMediaRoot = "/tmp/moviehub-test-media"

func newMovieRouter(svc service.MovieService) *gin.Engine {
	router := setupRouter()
	h := NewMovieHandler(svc, testMediaRoot)
	h.RegisterRoutes(router.Group(""), noopMW)
	return router
}

func TestListMovies(t *testing.T) {
	svc := new(MockMovieService)
	router := newMovieRouter(svc)

	svc.On("GetAll", mock.Anything, 1, 20).Return([]models.Movie{
		{
			ID:    1,
			Title: "New Movie",
			Ratings: []models.Rating{
				{ID: 10, MovieID: 1, UserID: "user-1", Stars: 2},
				{ID: 11, MovieID: 1, UserID: "user-2", Stars: 4},
			},
		},
		{ID: 2, Title: "Unrated Movie"},
	}, int64(2), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []dto.MovieResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)

	// list view references rating ids only and carries the average
	assert.Equal(t, []int64{10, 11}, resp.Data[0].Ratings)
	require.NotNil(t, resp.Data[0].AverageRating)
	assert.Equal(t, 3.0, *resp.Data[0].AverageRating)

	// a movie without ratings serializes average_rating as null, not 0
	assert.Empty(t, resp.Data[1].Ratings)
	assert.Nil(t, resp.Data[1].AverageRating)
}

func TestGetMovie_DetailExpandsRatings(t *testing.T) {
	svc := new(MockMovieService)
	router := newMovieRouter(svc)

	svc.On("GetByID", mock.Anything, int64(1)).Return(&models.Movie{
		ID:          1,
		Title:       "New Movie",
		Description: "A description",
		Ratings: []models.Rating{
			{ID: 10, MovieID: 1, UserID: "user-1", Stars: 2},
			{ID: 11, MovieID: 1, UserID: "user-2", Stars: 4},
		},
	}, nil)
	avg := 3.0
	svc.On("AverageRating", mock.Anything, int64(1)).Return(&avg, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/movies/1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.MovieDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Ratings, 2)
	assert.Equal(t, 2, resp.Ratings[0].Stars)
	assert.Equal(t, "user-1", resp.Ratings[0].User)
	require.NotNil(t, resp.AverageRating)
	assert.Equal(t, 3.0, *resp.AverageRating)
}

func TestGetMovie_NotFound(t *testing.T) {
	svc := new(MockMovieService)
	router := newMovieRouter(svc)

	svc.On("GetByID", mock.Anything, int64(99)).Return(nil, service.ErrMovieNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/movies/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMovie_InvalidID(t *testing.T) {
	svc := new(MockMovieService)
	router := newMovieRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/movies/not-a-number", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMovie_Created(t *testing.T) {
	svc := new(MockMovieService)
	router := newMovieRouter(svc)

	svc.On("Create", mock.Anything, "New Movie", "A description").
		Return(&models.Movie{ID: 1, Title: "New Movie", Description: "A description"}, nil)

	body, _ := json.Marshal(dto.CreateMovieRequest{Title: "New Movie", Description: "A description"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/movies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateMovie_DuplicateTitle(t *testing.T) {
	svc := new(MockMovieService)
	router := newMovieRouter(svc)

	svc.On("Create", mock.Anything, "New Movie", "").Return(nil, service.ErrTitleTaken)

	body, _ := json.Marshal(dto.CreateMovieRequest{Title: "New Movie"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/movies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteMovie(t *testing.T) {
	svc := new(MockMovieService)
	router := newMovieRouter(svc)

	svc.On("Delete", mock.Anything, int64(1)).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/movies/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUploadImage_MissingFile(t *testing.T) {
	svc := new(MockMovieService)
	router := newMovieRouter(svc)

	svc.On("GetByID", mock.Anything, int64(1)).Return(&models.Movie{ID: 1, Title: "New Movie"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/movies/1/upload-image", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImage_MovieNotFound(t *testing.T) {
	svc := new(MockMovieService)
	router := newMovieRouter(svc)

	svc.On("GetByID", mock.Anything, int64(99)).Return(nil, service.ErrMovieNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/movies/99/upload-image", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
