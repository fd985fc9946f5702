package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services/dto"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/pkg/apperrors"
)

type movieServiceFixture struct {
	users         *fakeUserRepo
	movies        *fakeMovieRepo
	notifications *fakeNotificationRepo
	storage       *fakeStorage
	scheduler     *fakeScheduler
	broadcaster   *fakeBroadcaster
	svc           MovieService
}

func newMovieServiceFixture() *movieServiceFixture {
	f := &movieServiceFixture{
		users:         newFakeUserRepo(),
		movies:        newFakeMovieRepo(),
		notifications: &fakeNotificationRepo{},
		storage:       newFakeStorage(),
		scheduler:     &fakeScheduler{},
		broadcaster:   &fakeBroadcaster{},
	}

	owner := &models.User{Name: "Gabrielli", Email: "gabi@test.com"}
	owner.ID = "user-1"
	f.users.add(owner)

	f.svc = NewMovieService(f.movies, f.users, f.notifications, f.storage, f.scheduler, f.broadcaster)
	return f
}

func (f *movieServiceFixture) seedMovie(m *models.Movie) *models.Movie {
	if m.ID == "" {
		m.ID = "movie-1"
	}
	if m.UserID == "" {
		m.UserID = "user-1"
	}
	f.movies.moviesByID[m.ID] = m
	return m
}

func TestMovieCreate_DefaultsToDraftPublic(t *testing.T) {
	f := newMovieServiceFixture()

	resp, err := f.svc.Create(context.Background(), "user-1", dto.MovieInput{
		Title:   "Interstellar",
		Tagline: "Mankind was born on Earth",
		Genres:  []string{"Sci-Fi", "Drama"},
	}, dto.MovieUploads{})

	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, "PUBLIC", resp.Visibility)
	assert.Equal(t, []string{"Sci-Fi", "Drama"}, f.movies.createdGenres)

	// Drafts are never announced.
	assert.Empty(t, f.notifications.created)
	assert.Empty(t, f.broadcaster.events)
	assert.Empty(t, f.scheduler.created)
}

func TestMovieCreate_UploadsImagesUnderUserKey(t *testing.T) {
	f := newMovieServiceFixture()

	resp, err := f.svc.Create(context.Background(), "user-1", dto.MovieInput{
		Title:   "Blade Runner",
		Tagline: "More human than human",
	}, dto.MovieUploads{
		Cover: &dto.ImageUpload{
			Filename:    "Cover Art.PNG",
			ContentType: "image/png",
			Reader:      strings.NewReader("png-bytes"),
		},
	})

	require.NoError(t, err)
	require.Len(t, f.storage.saved, 1)

	var key string
	for k := range f.storage.saved {
		key = k
	}
	assert.True(t, strings.HasPrefix(key, "users/user-1/movies/blade-runner/cover/"), key)
	assert.True(t, strings.HasSuffix(key, "-cover-art.png"), key)
	assert.Equal(t, "image/png", f.storage.saved[key])
	assert.Equal(t, f.storage.baseURL+key, resp.ImageCover)
}

func TestMovieCreate_PublishedPublicIsAnnounced(t *testing.T) {
	f := newMovieServiceFixture()

	_, err := f.svc.Create(context.Background(), "user-1", dto.MovieInput{
		Title:      "Dune",
		Tagline:    "Fear is the mind-killer",
		Status:     "PUBLISHED",
		Visibility: "PUBLIC",
	}, dto.MovieUploads{})

	require.NoError(t, err)
	require.Len(t, f.notifications.created, 1)
	assert.Equal(t, "newMovie", f.notifications.created[0].Type)
	assert.Equal(t, "Dune", f.notifications.created[0].Title)

	require.Equal(t, []string{"newMovie"}, f.broadcaster.events)
}

func TestMovieCreate_FutureReleaseBooksSchedule(t *testing.T) {
	f := newMovieServiceFixture()
	future := time.Now().AddDate(0, 1, 0).Format("2006-01-02")

	resp, err := f.svc.Create(context.Background(), "user-1", dto.MovieInput{
		Title:       "Tenet",
		Tagline:     "Time runs out",
		ReleaseDate: &future,
	}, dto.MovieUploads{})

	require.NoError(t, err)
	require.Len(t, f.scheduler.created, 1)
	assert.Equal(t, "gabi@test.com", f.scheduler.created[0].To)
	require.NotNil(t, f.scheduler.created[0].Movie)
	assert.Equal(t, "Tenet", f.scheduler.created[0].Movie.Title)

	require.NotNil(t, resp.ScheduleName)
	assert.Equal(t, "movie-12345", *resp.ScheduleName)
}

func TestMovieCreate_PastReleaseSkipsSchedule(t *testing.T) {
	f := newMovieServiceFixture()
	past := "2001-01-01"

	resp, err := f.svc.Create(context.Background(), "user-1", dto.MovieInput{
		Title:       "Memento",
		Tagline:     "Some memories are best forgotten",
		ReleaseDate: &past,
	}, dto.MovieUploads{})

	require.NoError(t, err)
	assert.Empty(t, f.scheduler.created)
	assert.Nil(t, resp.ScheduleName)
}

func TestMovieCreate_InvalidReleaseDate(t *testing.T) {
	f := newMovieServiceFixture()
	bad := "next tuesday"

	_, err := f.svc.Create(context.Background(), "user-1", dto.MovieInput{
		Title:       "Oops",
		Tagline:     "Bad date",
		ReleaseDate: &bad,
	}, dto.MovieUploads{})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestMovieList_MetaAndCallerIdentity(t *testing.T) {
	f := newMovieServiceFixture()
	f.movies.listResult = []models.Movie{{Title: "A", Tagline: "a"}, {Title: "B", Tagline: "b"}}
	f.movies.listTotal = 23

	resp, err := f.svc.List(context.Background(), "user-1", dto.MovieFilterRequest{Limit: 10, Page: 2})
	require.NoError(t, err)

	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(23), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.Limit)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	// The caller identity landed in the access clause.
	require.NotEmpty(t, f.movies.lastQuery.Clauses)
	assert.Contains(t, f.movies.lastQuery.Clauses[0].Args, "user-1")
}

func TestMovieList_InvalidReleaseBound(t *testing.T) {
	f := newMovieServiceFixture()
	bad := "31-12-2025"

	_, err := f.svc.List(context.Background(), "", dto.MovieFilterRequest{ReleaseFrom: &bad})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestMovieGetByID_AccessPolicy(t *testing.T) {
	f := newMovieServiceFixture()
	f.seedMovie(&models.Movie{
		BaseModel:  models.BaseModel{ID: "movie-1"},
		Title:      "Draft Movie",
		Tagline:    "hidden",
		Status:     models.MovieStatusDraft,
		Visibility: models.VisibilityPublic,
		UserID:     "user-1",
	})

	// Owner sees the draft.
	resp, err := f.svc.GetByID(context.Background(), "user-1", "movie-1")
	require.NoError(t, err)
	assert.Equal(t, "Draft Movie", resp.Title)

	// Another user and anonymous callers are denied.
	_, err = f.svc.GetByID(context.Background(), "user-2", "movie-1")
	assert.ErrorIs(t, err, apperrors.ErrMovieAccessDenied)
	_, err = f.svc.GetByID(context.Background(), "", "movie-1")
	assert.ErrorIs(t, err, apperrors.ErrMovieAccessDenied)

	// Unknown id is a 404.
	_, err = f.svc.GetByID(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, apperrors.ErrMovieNotFound)
}

func TestMovieGetByID_PublishedPublicIsOpen(t *testing.T) {
	f := newMovieServiceFixture()
	f.seedMovie(&models.Movie{
		BaseModel:  models.BaseModel{ID: "movie-1"},
		Title:      "Open Movie",
		Tagline:    "visible",
		Status:     models.MovieStatusPublished,
		Visibility: models.VisibilityPublic,
		UserID:     "user-1",
	})

	resp, err := f.svc.GetByID(context.Background(), "", "movie-1")
	require.NoError(t, err)
	assert.Equal(t, "Open Movie", resp.Title)
}

func TestMovieUpdate_OwnershipEnforced(t *testing.T) {
	f := newMovieServiceFixture()
	f.seedMovie(&models.Movie{
		BaseModel: models.BaseModel{ID: "movie-1"},
		Title:     "Mine",
		Tagline:   "mine",
		UserID:    "user-1",
	})

	title := "Stolen"
	_, err := f.svc.Update(context.Background(), "user-2", "movie-1", dto.MovieUpdateInput{Title: &title}, dto.MovieUploads{})
	assert.ErrorIs(t, err, apperrors.ErrNotMovieOwner)

	err = f.svc.Delete(context.Background(), "user-2", "movie-1")
	assert.ErrorIs(t, err, apperrors.ErrNotMovieOwner)
}

func TestMovieUpdate_PartialFieldsAndGenres(t *testing.T) {
	f := newMovieServiceFixture()
	f.seedMovie(&models.Movie{
		BaseModel:  models.BaseModel{ID: "movie-1"},
		Title:      "Old Title",
		Tagline:    "old tagline",
		Director:   "Old Director",
		Status:     models.MovieStatusDraft,
		Visibility: models.VisibilityPublic,
		UserID:     "user-1",
	})

	title := "New Title"
	resp, err := f.svc.Update(context.Background(), "user-1", "movie-1", dto.MovieUpdateInput{
		Title: &title,
	}, dto.MovieUploads{})

	require.NoError(t, err)
	assert.Equal(t, "New Title", resp.Title)
	assert.Equal(t, "old tagline", resp.Tagline)
	assert.Equal(t, "Old Director", resp.Director)

	// Genres were not sent, so the links stay untouched.
	assert.True(t, f.movies.updateGenreNil)

	// Sending genres replaces them.
	_, err = f.svc.Update(context.Background(), "user-1", "movie-1", dto.MovieUpdateInput{
		Genres: []string{"Thriller"},
	}, dto.MovieUploads{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Thriller"}, f.movies.updatedGenres)
}

func TestMovieUpdate_ReleaseDateChangeRebooksSchedule(t *testing.T) {
	f := newMovieServiceFixture()
	oldName := "movie-111"
	oldDate := time.Now().AddDate(0, 0, 10)
	f.seedMovie(&models.Movie{
		BaseModel:    models.BaseModel{ID: "movie-1"},
		Title:        "Tenet",
		Tagline:      "Time runs out",
		ReleaseDate:  &oldDate,
		ScheduleName: &oldName,
		UserID:       "user-1",
	})

	newDate := time.Now().AddDate(0, 2, 0).Format("2006-01-02")
	resp, err := f.svc.Update(context.Background(), "user-1", "movie-1", dto.MovieUpdateInput{
		ReleaseDate: &newDate,
	}, dto.MovieUploads{})

	require.NoError(t, err)
	assert.Equal(t, []string{"movie-111"}, f.scheduler.deleted)
	require.Len(t, f.scheduler.created, 1)
	require.NotNil(t, resp.ScheduleName)
	assert.Equal(t, "movie-12345", *resp.ScheduleName)
}

func TestMovieUpdate_ClearingReleaseDateCancelsSchedule(t *testing.T) {
	f := newMovieServiceFixture()
	oldName := "movie-111"
	oldDate := time.Now().AddDate(0, 0, 10)
	f.seedMovie(&models.Movie{
		BaseModel:    models.BaseModel{ID: "movie-1"},
		Title:        "Tenet",
		Tagline:      "Time runs out",
		ReleaseDate:  &oldDate,
		ScheduleName: &oldName,
		UserID:       "user-1",
	})

	empty := ""
	resp, err := f.svc.Update(context.Background(), "user-1", "movie-1", dto.MovieUpdateInput{
		ReleaseDate: &empty,
	}, dto.MovieUploads{})

	require.NoError(t, err)
	assert.Equal(t, []string{"movie-111"}, f.scheduler.deleted)
	assert.Empty(t, f.scheduler.created)
	assert.Nil(t, resp.ScheduleName)
	assert.Nil(t, resp.ReleaseDate)
}

func TestMovieUpdate_PublishTransitionAnnouncesOnce(t *testing.T) {
	f := newMovieServiceFixture()
	f.seedMovie(&models.Movie{
		BaseModel:  models.BaseModel{ID: "movie-1"},
		Title:      "Dune",
		Tagline:    "Fear is the mind-killer",
		Status:     models.MovieStatusDraft,
		Visibility: models.VisibilityPublic,
		UserID:     "user-1",
	})

	published := "PUBLISHED"
	_, err := f.svc.Update(context.Background(), "user-1", "movie-1", dto.MovieUpdateInput{
		Status: &published,
	}, dto.MovieUploads{})
	require.NoError(t, err)
	assert.Equal(t, []string{"newMovie"}, f.broadcaster.events)

	// A second no-op update of an already published movie stays quiet.
	tagline := "new tagline"
	_, err = f.svc.Update(context.Background(), "user-1", "movie-1", dto.MovieUpdateInput{
		Tagline: &tagline,
	}, dto.MovieUploads{})
	require.NoError(t, err)
	assert.Equal(t, []string{"newMovie"}, f.broadcaster.events)
}

func TestMovieUpdate_ImageReplacementDeletesOldObject(t *testing.T) {
	f := newMovieServiceFixture()
	f.seedMovie(&models.Movie{
		BaseModel:  models.BaseModel{ID: "movie-1"},
		Title:      "Blade Runner",
		Tagline:    "More human than human",
		ImageCover: f.storage.baseURL + "users/user-1/movies/blade-runner/cover/old-key.png",
		UserID:     "user-1",
	})

	_, err := f.svc.Update(context.Background(), "user-1", "movie-1", dto.MovieUpdateInput{}, dto.MovieUploads{
		Cover: &dto.ImageUpload{
			Filename:    "new.png",
			ContentType: "image/png",
			Reader:      strings.NewReader("png"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"users/user-1/movies/blade-runner/cover/old-key.png"}, f.storage.deleted)
	assert.Len(t, f.storage.saved, 1)
}

func TestMovieDelete_CleansUpExternalState(t *testing.T) {
	f := newMovieServiceFixture()
	name := "movie-999"
	f.seedMovie(&models.Movie{
		BaseModel:    models.BaseModel{ID: "movie-1"},
		Title:        "Gone",
		Tagline:      "gone",
		ImageCover:   f.storage.baseURL + "users/user-1/movies/gone/cover/a.png",
		ImagePoster:  "https://external.example.com/poster.png",
		ScheduleName: &name,
		UserID:       "user-1",
	})

	err := f.svc.Delete(context.Background(), "user-1", "movie-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"movie-1"}, f.movies.deleted)
	// Only our own object is removed; the external poster URL is untouched.
	assert.Equal(t, []string{"users/user-1/movies/gone/cover/a.png"}, f.storage.deleted)
	assert.Equal(t, []string{"movie-999"}, f.scheduler.deleted)
}
