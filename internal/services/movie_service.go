package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/repositories"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/scheduler"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services/dto"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/storage"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/pkg/apperrors"
)

type MovieService interface {
	Create(ctx context.Context, userID string, input dto.MovieInput, uploads dto.MovieUploads) (*dto.MovieResponse, error)

	// List applies the access policy for the caller; callerID is empty for
	// anonymous requests.
	List(ctx context.Context, callerID string, req dto.MovieFilterRequest) (*dto.MovieListResponse, error)

	// GetByID returns the full record. Drafts and private movies are only
	// visible to their owner.
	GetByID(ctx context.Context, callerID, movieID string) (*dto.MovieDetailResponse, error)

	Update(ctx context.Context, userID, movieID string, input dto.MovieUpdateInput, uploads dto.MovieUploads) (*dto.MovieResponse, error)

	Delete(ctx context.Context, userID, movieID string) error
}

type MovieServiceImpl struct {
	movies        repositories.MovieRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	files         storage.Storage
	schedules     scheduler.Scheduler
	broadcaster   Broadcaster
}

func NewMovieService(
	movies repositories.MovieRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
	files storage.Storage,
	schedules scheduler.Scheduler,
	broadcaster Broadcaster,
) MovieService {
	return &MovieServiceImpl{
		movies:        movies,
		users:         users,
		notifications: notifications,
		files:         files,
		schedules:     schedules,
		broadcaster:   broadcaster,
	}
}

func (s *MovieServiceImpl) Create(ctx context.Context, userID string, input dto.MovieInput, uploads dto.MovieUploads) (*dto.MovieResponse, error) {
	releaseDate, err := parseReleaseDate(input.ReleaseDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid releaseDate, expected YYYY-MM-DD")
	}

	movie := &models.Movie{
		Title:            input.Title,
		Tagline:          input.Tagline,
		OriginalTitle:    input.OriginalTitle,
		Description:      input.Description,
		ReleaseDate:      releaseDate,
		Duration:         input.Duration,
		IndicativeRating: input.IndicativeRating,
		Director:         input.Director,
		Language:         input.Language,
		Country:          input.Country,
		Actors:           input.Actors,
		Producers:        input.Producers,
		Budget:           input.Budget,
		Revenue:          input.Revenue,
		Profit:           input.Profit,
		RatingAvg:        input.RatingAvg,
		Status:           models.MovieStatusDraft,
		Visibility:       models.VisibilityPublic,
		ImageCover:       input.ImageCover,
		ImagePoster:      input.ImagePoster,
		LinkPreview:      input.LinkPreview,
		UserID:           userID,
	}
	if input.Status != "" {
		movie.Status = models.MovieStatus(input.Status)
	}
	if input.Visibility != "" {
		movie.Visibility = models.Visibility(input.Visibility)
	}

	if uploads.Cover != nil {
		url, err := s.uploadImage(ctx, userID, movie.Title, "cover", uploads.Cover)
		if err != nil {
			return nil, err
		}
		movie.ImageCover = url
	}
	if uploads.Poster != nil {
		url, err := s.uploadImage(ctx, userID, movie.Title, "poster", uploads.Poster)
		if err != nil {
			return nil, err
		}
		movie.ImagePoster = url
	}

	if err := s.movies.CreateWithGenres(movie, input.Genres); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Side effects run after commit; their failure never rolls the row back.
	s.registerReleaseSchedule(ctx, movie)
	if movie.Status == models.MovieStatusPublished && movie.Visibility == models.VisibilityPublic {
		s.announceMovie(ctx, movie)
	}

	logger.CtxInfo(ctx, "movie created", "movie_id", movie.ID, "user_id", userID)
	return s.summary(movie)
}

func (s *MovieServiceImpl) List(ctx context.Context, callerID string, req dto.MovieFilterRequest) (*dto.MovieListResponse, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	query := repositories.BuildMovieQuery(filter, callerID)
	movies, total, err := s.movies.List(query)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	data := make([]dto.MovieResponse, 0, len(movies))
	for i := range movies {
		data = append(data, dto.NewMovieResponse(&movies[i]))
	}

	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))
	return &dto.MovieListResponse{
		Data: data,
		Meta: dto.ListMeta{
			Total:      total,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *MovieServiceImpl) GetByID(ctx context.Context, callerID, movieID string) (*dto.MovieDetailResponse, error) {
	movie, err := s.movies.FindDetail(movieID)
	if err != nil {
		if errors.Is(err, repositories.ErrMovieNotFound) {
			return nil, apperrors.ErrMovieNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	published := movie.Status == models.MovieStatusPublished && movie.Visibility == models.VisibilityPublic
	if !published && movie.UserID != callerID {
		return nil, apperrors.ErrMovieAccessDenied
	}

	resp := dto.NewMovieDetailResponse(movie)
	return &resp, nil
}

func (s *MovieServiceImpl) Update(ctx context.Context, userID, movieID string, input dto.MovieUpdateInput, uploads dto.MovieUploads) (*dto.MovieResponse, error) {
	movie, err := s.ownedMovie(userID, movieID)
	if err != nil {
		return nil, err
	}

	wasAnnouncable := movie.Status == models.MovieStatusPublished && movie.Visibility == models.VisibilityPublic
	oldRelease := movie.ReleaseDate

	applyUpdate(movie, input)

	if input.ReleaseDate != nil {
		if *input.ReleaseDate == "" {
			movie.ReleaseDate = nil
		} else {
			parsed, err := parseReleaseDate(input.ReleaseDate)
			if err != nil {
				return nil, apperrors.NewBadRequestError("Invalid releaseDate, expected YYYY-MM-DD")
			}
			movie.ReleaseDate = parsed
		}
	}

	if uploads.Cover != nil {
		s.deleteImage(ctx, movie.ImageCover)
		url, err := s.uploadImage(ctx, userID, movie.Title, "cover", uploads.Cover)
		if err != nil {
			return nil, err
		}
		movie.ImageCover = url
	}
	if uploads.Poster != nil {
		s.deleteImage(ctx, movie.ImagePoster)
		url, err := s.uploadImage(ctx, userID, movie.Title, "poster", uploads.Poster)
		if err != nil {
			return nil, err
		}
		movie.ImagePoster = url
	}

	if err := s.movies.UpdateWithGenres(movie, input.Genres); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if releaseChanged(oldRelease, movie.ReleaseDate) {
		s.cancelReleaseSchedule(ctx, movie)
		s.registerReleaseSchedule(ctx, movie)
	}

	isAnnouncable := movie.Status == models.MovieStatusPublished && movie.Visibility == models.VisibilityPublic
	if isAnnouncable && !wasAnnouncable {
		s.announceMovie(ctx, movie)
	}

	logger.CtxInfo(ctx, "movie updated", "movie_id", movie.ID, "user_id", userID)
	return s.summary(movie)
}

func (s *MovieServiceImpl) Delete(ctx context.Context, userID, movieID string) error {
	movie, err := s.ownedMovie(userID, movieID)
	if err != nil {
		return err
	}

	// External cleanup is best effort; the row goes away regardless.
	s.deleteImage(ctx, movie.ImageCover)
	s.deleteImage(ctx, movie.ImagePoster)
	s.cancelReleaseSchedule(ctx, movie)

	if err := s.movies.Delete(movie); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "movie deleted", "movie_id", movieID, "user_id", userID)
	return nil
}

// ownedMovie loads the row and enforces ownership for mutations.
func (s *MovieServiceImpl) ownedMovie(userID, movieID string) (*models.Movie, error) {
	movie, err := s.movies.FindByID(movieID)
	if err != nil {
		if errors.Is(err, repositories.ErrMovieNotFound) {
			return nil, apperrors.ErrMovieNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if movie.UserID != userID {
		return nil, apperrors.ErrNotMovieOwner
	}
	return movie, nil
}

func (s *MovieServiceImpl) summary(movie *models.Movie) (*dto.MovieResponse, error) {
	loaded, err := s.movies.FindDetail(movie.ID)
	if err != nil {
		// The row exists; fall back to the in-memory copy.
		resp := dto.NewMovieResponse(movie)
		return &resp, nil
	}
	resp := dto.NewMovieResponse(loaded)
	return &resp, nil
}

// uploadImage stores the file under a per-user key and returns its public URL.
func (s *MovieServiceImpl) uploadImage(ctx context.Context, userID, title, kind string, img *dto.ImageUpload) (string, error) {
	key := objectKey(userID, title, kind, img.Filename)
	if err := s.files.Save(ctx, key, img.Reader, img.ContentType); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeExternalServiceError, "movie", "Failed to store image", http.StatusInternalServerError)
	}
	url, err := s.files.GetURL(ctx, key)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeExternalServiceError, "movie", "Failed to resolve image URL", http.StatusInternalServerError)
	}
	return url, nil
}

// deleteImage removes a previously stored object. URLs that were not produced
// by our storage (caller-supplied links) are left alone.
func (s *MovieServiceImpl) deleteImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	key, ok := s.files.ExtractKey(url)
	if !ok {
		return
	}
	if err := s.files.Delete(ctx, key); err != nil {
		logger.CtxWarn(ctx, "image cleanup failed", "key", key, "error", err.Error())
	}
}

// registerReleaseSchedule books the release email when the date is in the
// future, storing the returned handle on the row.
func (s *MovieServiceImpl) registerReleaseSchedule(ctx context.Context, movie *models.Movie) {
	if movie.ReleaseDate == nil || !movie.ReleaseDate.After(time.Now()) {
		return
	}

	owner, err := s.users.FindByID(movie.UserID)
	if err != nil {
		logger.CtxWarn(ctx, "release schedule skipped, owner lookup failed", "movie_id", movie.ID, "error", err.Error())
		return
	}

	payload := scheduler.EmailPayload{
		To:      owner.Email,
		Subject: movie.Title + " is now available",
		Movie: &scheduler.MoviePayload{
			Title:       movie.Title,
			Tagline:     movie.Tagline,
			Description: movie.Description,
			ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
			LinkPreview: movie.LinkPreview,
			ImagePoster: movie.ImagePoster,
		},
	}

	name, err := s.schedules.CreateEmailSchedule(ctx, *movie.ReleaseDate, payload)
	if err != nil {
		logger.CtxWarn(ctx, "release schedule registration failed", "movie_id", movie.ID, "error", err.Error())
		return
	}

	if err := s.movies.UpdateScheduleName(movie.ID, &name); err != nil {
		logger.CtxWarn(ctx, "release schedule handle not persisted", "movie_id", movie.ID, "error", err.Error())
		return
	}
	movie.ScheduleName = &name
}

func (s *MovieServiceImpl) cancelReleaseSchedule(ctx context.Context, movie *models.Movie) {
	if movie.ScheduleName == nil {
		return
	}
	if err := s.schedules.DeleteEmailSchedule(ctx, *movie.ScheduleName); err != nil {
		logger.CtxWarn(ctx, "release schedule cancellation failed", "movie_id", movie.ID, "error", err.Error())
	}
	if err := s.movies.UpdateScheduleName(movie.ID, nil); err != nil {
		logger.CtxWarn(ctx, "release schedule handle not cleared", "movie_id", movie.ID, "error", err.Error())
	}
	movie.ScheduleName = nil
}

// announceMovie persists the notification and pushes a "newMovie" event to
// connected clients.
func (s *MovieServiceImpl) announceMovie(ctx context.Context, movie *models.Movie) {
	data, _ := json.Marshal(map[string]string{
		"movieId":     movie.ID,
		"imagePoster": movie.ImagePoster,
	})

	notification := &models.Notification{
		Type:    "newMovie",
		Title:   movie.Title,
		Message: movie.Tagline,
		Link:    movie.LinkPreview,
		Data:    datatypes.JSON(data),
	}
	if err := s.notifications.Create(notification); err != nil {
		logger.CtxWarn(ctx, "notification not persisted", "movie_id", movie.ID, "error", err.Error())
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast("newMovie", map[string]string{
			"id":          movie.ID,
			"title":       movie.Title,
			"tagline":     movie.Tagline,
			"imagePoster": movie.ImagePoster,
		})
	}
}

func applyUpdate(movie *models.Movie, input dto.MovieUpdateInput) {
	if input.Title != nil {
		movie.Title = *input.Title
	}
	if input.Tagline != nil {
		movie.Tagline = *input.Tagline
	}
	if input.OriginalTitle != nil {
		movie.OriginalTitle = *input.OriginalTitle
	}
	if input.Description != nil {
		movie.Description = *input.Description
	}
	if input.Duration != nil {
		movie.Duration = input.Duration
	}
	if input.IndicativeRating != nil {
		movie.IndicativeRating = input.IndicativeRating
	}
	if input.Director != nil {
		movie.Director = *input.Director
	}
	if input.Language != nil {
		movie.Language = *input.Language
	}
	if input.Country != nil {
		movie.Country = *input.Country
	}
	if input.Actors != nil {
		movie.Actors = input.Actors
	}
	if input.Producers != nil {
		movie.Producers = input.Producers
	}
	if input.Budget != nil {
		movie.Budget = input.Budget
	}
	if input.Revenue != nil {
		movie.Revenue = input.Revenue
	}
	if input.Profit != nil {
		movie.Profit = input.Profit
	}
	if input.RatingAvg != nil {
		movie.RatingAvg = input.RatingAvg
	}
	if input.Status != nil {
		movie.Status = models.MovieStatus(*input.Status)
	}
	if input.Visibility != nil {
		movie.Visibility = models.Visibility(*input.Visibility)
	}
	if input.ImageCover != nil {
		movie.ImageCover = *input.ImageCover
	}
	if input.ImagePoster != nil {
		movie.ImagePoster = *input.ImagePoster
	}
	if input.LinkPreview != nil {
		movie.LinkPreview = *input.LinkPreview
	}
}

func buildFilter(req dto.MovieFilterRequest) (repositories.MovieFilter, error) {
	filter := repositories.MovieFilter{
		Search:      req.Search,
		Status:      req.Status,
		Visibility:  req.Visibility,
		Genre:       req.Genre,
		Director:    req.Director,
		MinDuration: req.MinDuration,
		MaxDuration: req.MaxDuration,
		MinBudget:   req.MinBudget,
		MaxBudget:   req.MaxBudget,
		MinRevenue:  req.MinRevenue,
		MaxRevenue:  req.MaxRevenue,
		MinProfit:   req.MinProfit,
		MaxProfit:   req.MaxProfit,
		MinRating:   req.MinRating,
		MaxRating:   req.MaxRating,
		OrderBy:     req.OrderBy,
		Order:       req.Order,
		Page:        req.Page,
		Limit:       req.Limit,
	}

	from, err := parseReleaseDate(req.ReleaseFrom)
	if err != nil {
		return filter, apperrors.NewBadRequestError("Invalid releaseFrom, expected YYYY-MM-DD")
	}
	filter.ReleaseFrom = from

	to, err := parseReleaseDate(req.ReleaseTo)
	if err != nil {
		return filter, apperrors.NewBadRequestError("Invalid releaseTo, expected YYYY-MM-DD")
	}
	filter.ReleaseTo = to

	return filter, nil
}

// parseReleaseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseReleaseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", *value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func releaseChanged(a, b *time.Time) bool {
	if a == nil && b == nil {
		return false
	}
	if a == nil || b == nil {
		return true
	}
	return !a.Equal(*b)
}

// objectKey builds the storage key for an uploaded image:
// users/<userId>/movies/<title>/<kind>/<uuid>-<filename>.
func objectKey(userID, title, kind, filename string) string {
	return strings.Join([]string{
		"users", userID, "movies", sanitizeSegment(title), kind,
		uuid.NewString() + "-" + sanitizeSegment(filename),
	}, "/")
}

// sanitizeSegment keeps keys URL- and filesystem-safe.
func sanitizeSegment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
