package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/mailer"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/repositories"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/scheduler"
)

// Hand-rolled in-memory fakes. Each records calls so tests can assert on
// the side effects services trigger.

type fakeUserRepo struct {
	usersByEmail map[string]*models.User
	usersByID    map[string]*models.User

	created          []*models.User
	updatedPasswords map[string]string
	createErr        error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail:     make(map[string]*models.User),
		usersByID:        make(map[string]*models.User),
		updatedPasswords: make(map[string]string),
	}
}

func (f *fakeUserRepo) add(user *models.User) {
	f.usersByEmail[user.Email] = user
	f.usersByID[user.ID] = user
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := f.usersByID[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	f.created = append(f.created, user)
	f.add(user)
	return nil
}

func (f *fakeUserRepo) UpdateTheme(userID string, theme models.Theme) (*models.User, error) {
	u, ok := f.usersByID[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	u.Theme = theme
	return u, nil
}

func (f *fakeUserRepo) UpdatePasswordByEmail(email, passwordHash string) error {
	u, ok := f.usersByEmail[email]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.updatedPasswords[email] = passwordHash
	return nil
}

type fakeMovieRepo struct {
	moviesByID map[string]*models.Movie

	lastQuery      repositories.MovieQuery
	listResult     []models.Movie
	listTotal      int64
	createdGenres  []string
	updatedGenres  []string
	scheduleNames  map[string]*string
	deleted        []string
	updateGenreNil bool
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{
		moviesByID:    make(map[string]*models.Movie),
		scheduleNames: make(map[string]*string),
	}
}

func (f *fakeMovieRepo) FindByID(id string) (*models.Movie, error) {
	if m, ok := f.moviesByID[id]; ok {
		return m, nil
	}
	return nil, repositories.ErrMovieNotFound
}

func (f *fakeMovieRepo) FindDetail(id string) (*models.Movie, error) {
	return f.FindByID(id)
}

func (f *fakeMovieRepo) List(q repositories.MovieQuery) ([]models.Movie, int64, error) {
	f.lastQuery = q
	return f.listResult, f.listTotal, nil
}

func (f *fakeMovieRepo) CreateWithGenres(movie *models.Movie, genreNames []string) error {
	if movie.ID == "" {
		movie.ID = "movie-1"
	}
	f.createdGenres = genreNames
	f.moviesByID[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) UpdateWithGenres(movie *models.Movie, genreNames []string) error {
	f.updatedGenres = genreNames
	f.updateGenreNil = genreNames == nil
	f.moviesByID[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) UpdateScheduleName(movieID string, name *string) error {
	f.scheduleNames[movieID] = name
	if m, ok := f.moviesByID[movieID]; ok {
		m.ScheduleName = name
	}
	return nil
}

func (f *fakeMovieRepo) Delete(movie *models.Movie) error {
	f.deleted = append(f.deleted, movie.ID)
	delete(f.moviesByID, movie.ID)
	return nil
}

type fakeNotificationRepo struct {
	created []*models.Notification
}

func (f *fakeNotificationRepo) Create(n *models.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) FindRecent(limit int) ([]models.Notification, error) {
	out := make([]models.Notification, 0, len(f.created))
	for _, n := range f.created {
		out = append(out, *n)
	}
	return out, nil
}

type fakeResetRepo struct {
	records map[string]*models.PasswordReset
	marked  []string
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{records: make(map[string]*models.PasswordReset)}
}

func (f *fakeResetRepo) Upsert(email, code string, expiresAt time.Time) error {
	record := &models.PasswordReset{Email: email, Code: code, ExpiresAt: expiresAt}
	record.ID = "reset-" + email
	f.records[email] = record
	return nil
}

func (f *fakeResetRepo) FindActiveByEmail(email string) (*models.PasswordReset, error) {
	if r, ok := f.records[email]; ok && !r.Used {
		return r, nil
	}
	return nil, repositories.ErrResetNotFound
}

func (f *fakeResetRepo) FindActiveByEmailAndCode(email, code string) (*models.PasswordReset, error) {
	if r, ok := f.records[email]; ok && !r.Used && r.Code == code {
		return r, nil
	}
	return nil, repositories.ErrResetNotFound
}

func (f *fakeResetRepo) MarkUsed(id string) error {
	for _, r := range f.records {
		if r.ID == id {
			r.Used = true
			f.marked = append(f.marked, id)
			return nil
		}
	}
	return repositories.ErrResetNotFound
}

func (f *fakeResetRepo) DeleteDead(before time.Time) (int64, error) {
	var n int64
	for email, r := range f.records {
		if r.Used || r.ExpiresAt.Before(before) {
			delete(f.records, email)
			n++
		}
	}
	return n, nil
}

type fakeStorage struct {
	saved   map[string]string // key -> content type
	deleted []string
	baseURL string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string]string), baseURL: "https://files.test/"}
}

func (f *fakeStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	f.saved[path] = contentType
	return nil
}

func (f *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := f.saved[path]
	return ok, nil
}

func (f *fakeStorage) GetURL(ctx context.Context, path string) (string, error) {
	return f.baseURL + path, nil
}

func (f *fakeStorage) ExtractKey(url string) (string, bool) {
	if strings.HasPrefix(url, f.baseURL) {
		return strings.TrimPrefix(url, f.baseURL), true
	}
	return "", false
}

type fakeScheduler struct {
	created  []scheduler.EmailPayload
	deleted  []string
	nextName string
	err      error
}

func (f *fakeScheduler) CreateEmailSchedule(ctx context.Context, at time.Time, payload scheduler.EmailPayload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, payload)
	if f.nextName == "" {
		f.nextName = "movie-12345"
	}
	return f.nextName, nil
}

func (f *fakeScheduler) DeleteEmailSchedule(ctx context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

type fakeMailer struct {
	sent []*mailer.Email
	err  error
}

func (f *fakeMailer) Send(email *mailer.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

type fakeBroadcaster struct {
	events   []string
	payloads []any
}

func (f *fakeBroadcaster) Broadcast(event string, payload any) {
	f.events = append(f.events, event)
	f.payloads = append(f.payloads, payload)
}
