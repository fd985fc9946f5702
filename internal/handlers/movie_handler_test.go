package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services/dto"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/validator"
)

type stubMovieService struct {
	lastUserID  string
	lastInput   dto.MovieInput
	lastUpdate  dto.MovieUpdateInput
	lastUploads dto.MovieUploads
	lastFilter  dto.MovieFilterRequest
	coverBytes  []byte
}

func (s *stubMovieService) Create(ctx context.Context, userID string, input dto.MovieInput, uploads dto.MovieUploads) (*dto.MovieResponse, error) {
	s.lastUserID = userID
	s.lastInput = input
	s.lastUploads = uploads
	if uploads.Cover != nil {
		s.coverBytes, _ = io.ReadAll(uploads.Cover.Reader)
	}
	return &dto.MovieResponse{ID: "movie-1", Title: input.Title}, nil
}

func (s *stubMovieService) List(ctx context.Context, callerID string, req dto.MovieFilterRequest) (*dto.MovieListResponse, error) {
	s.lastUserID = callerID
	s.lastFilter = req
	return &dto.MovieListResponse{Data: []dto.MovieResponse{}, Meta: dto.ListMeta{Page: 1, Limit: 10}}, nil
}

func (s *stubMovieService) GetByID(ctx context.Context, callerID, movieID string) (*dto.MovieDetailResponse, error) {
	return &dto.MovieDetailResponse{MovieResponse: dto.MovieResponse{ID: movieID}}, nil
}

func (s *stubMovieService) Update(ctx context.Context, userID, movieID string, input dto.MovieUpdateInput, uploads dto.MovieUploads) (*dto.MovieResponse, error) {
	s.lastUserID = userID
	s.lastUpdate = input
	s.lastUploads = uploads
	return &dto.MovieResponse{ID: movieID}, nil
}

func (s *stubMovieService) Delete(ctx context.Context, userID, movieID string) error {
	s.lastUserID = userID
	return nil
}

func setupMovieRouter(svc *stubMovieService, authedUser string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	identity := func(c *gin.Context) {
		if authedUser != "" {
			c.Set("userID", authedUser)
		}
	}

	handler := NewMovieHandler(NewBaseHandler(validator.New()), svc)
	r.POST("/movie/create", identity, handler.Create)
	r.GET("/movie/list", identity, handler.List)
	r.PUT("/movie/:id", identity, handler.Update)
	return r
}

func TestMovieCreate_Handler_MultipartForm(t *testing.T) {
	svc := &stubMovieService{}
	r := setupMovieRouter(svc, "user-1")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("title", "Interstellar"))
	require.NoError(t, form.WriteField("tagline", "Mankind was born on Earth"))
	require.NoError(t, form.WriteField("duration", "169"))
	require.NoError(t, form.WriteField("budget", "165000000"))
	require.NoError(t, form.WriteField("status", "PUBLISHED"))
	require.NoError(t, form.WriteField("actors", "Matthew McConaughey, Anne Hathaway"))
	require.NoError(t, form.WriteField("genres", "Sci-Fi"))
	require.NoError(t, form.WriteField("genres", "Drama"))

	file, err := form.CreateFormFile("imageCover", "cover.png")
	require.NoError(t, err)
	_, err = file.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/movie/create", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "user-1", svc.lastUserID)
	assert.Equal(t, "Interstellar", svc.lastInput.Title)
	require.NotNil(t, svc.lastInput.Duration)
	assert.Equal(t, 169, *svc.lastInput.Duration)
	require.NotNil(t, svc.lastInput.Budget)
	assert.Equal(t, 165000000.0, *svc.lastInput.Budget)
	assert.Equal(t, "PUBLISHED", svc.lastInput.Status)
	assert.Equal(t, []string{"Matthew McConaughey", "Anne Hathaway"}, svc.lastInput.Actors)
	assert.Equal(t, []string{"Sci-Fi", "Drama"}, svc.lastInput.Genres)

	require.NotNil(t, svc.lastUploads.Cover)
	assert.Equal(t, "cover.png", svc.lastUploads.Cover.Filename)
	assert.Equal(t, []byte("png-bytes"), svc.coverBytes)
}

func TestMovieCreate_Handler_IndexedGenreKeys(t *testing.T) {
	svc := &stubMovieService{}
	r := setupMovieRouter(svc, "user-1")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("title", "Interstellar"))
	require.NoError(t, form.WriteField("tagline", "Mankind was born on Earth"))
	require.NoError(t, form.WriteField("genres[0].name", "Sci-Fi"))
	require.NoError(t, form.WriteField("genres[1].name", "Drama"))
	require.NoError(t, form.WriteField("actors[0]", "Matthew McConaughey"))
	require.NoError(t, form.WriteField("actors[1]", "Anne Hathaway"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/movie/create", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []string{"Sci-Fi", "Drama"}, svc.lastInput.Genres)
	assert.Equal(t, []string{"Matthew McConaughey", "Anne Hathaway"}, svc.lastInput.Actors)
}

func TestMovieCreate_Handler_MissingRequiredFields(t *testing.T) {
	svc := &stubMovieService{}
	r := setupMovieRouter(svc, "user-1")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("title", "No Tagline"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/movie/create", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "tagline")
}

func TestMovieCreate_Handler_NonNumericField(t *testing.T) {
	svc := &stubMovieService{}
	r := setupMovieRouter(svc, "user-1")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("title", "Interstellar"))
	require.NoError(t, form.WriteField("tagline", "Mankind was born on Earth"))
	require.NoError(t, form.WriteField("duration", "three hours"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/movie/create", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duration")
}

func TestMovieCreate_Handler_RequiresAuth(t *testing.T) {
	svc := &stubMovieService{}
	r := setupMovieRouter(svc, "")

	req := httptest.NewRequest(http.MethodPost, "/movie/create", bytes.NewReader([]byte(`{"title":"X","tagline":"Y"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMovieList_Handler_BindsQuery(t *testing.T) {
	svc := &stubMovieService{}
	r := setupMovieRouter(svc, "")

	req := httptest.NewRequest(http.MethodGet, "/movie/list?search=noir&status=PUBLISHED&minDuration=90&page=2&limit=5&orderBy=title&order=asc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "noir", svc.lastFilter.Search)
	assert.Equal(t, "PUBLISHED", svc.lastFilter.Status)
	require.NotNil(t, svc.lastFilter.MinDuration)
	assert.Equal(t, 90, *svc.lastFilter.MinDuration)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 5, svc.lastFilter.Limit)
}

func TestMovieList_Handler_RejectsBadEnums(t *testing.T) {
	svc := &stubMovieService{}
	r := setupMovieRouter(svc, "")

	req := httptest.NewRequest(http.MethodGet, "/movie/list?status=ARCHIVED", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMovieUpdate_Handler_PartialMultipart(t *testing.T) {
	svc := &stubMovieService{}
	r := setupMovieRouter(svc, "user-1")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("title", "New Title"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPut, "/movie/movie-1", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, svc.lastUpdate.Title)
	assert.Equal(t, "New Title", *svc.lastUpdate.Title)
	// Fields not present in the form stay nil.
	assert.Nil(t, svc.lastUpdate.Tagline)
	assert.Nil(t, svc.lastUpdate.Duration)
	assert.Nil(t, svc.lastUpdate.Genres)
}

func TestMovieUpdate_Handler_IndexedGenreKeysDetected(t *testing.T) {
	svc := &stubMovieService{}
	r := setupMovieRouter(svc, "user-1")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("genres[0].name", "Thriller"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPut, "/movie/movie-1", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"Thriller"}, svc.lastUpdate.Genres)
}
