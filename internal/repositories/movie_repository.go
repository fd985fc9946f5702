package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
)

var ErrMovieNotFound = errors.New("movie not found")

type MovieRepository interface {
	// FindByID loads the bare row, without relations.
	FindByID(id string) (*models.Movie, error)

	// FindDetail loads the full record: genres, ratings and top-level
	// comments with their direct replies.
	FindDetail(id string) (*models.Movie, error)

	// List evaluates a built MovieQuery and returns the page plus the total
	// matching count.
	List(q MovieQuery) ([]models.Movie, int64, error)

	// CreateWithGenres persists the movie row and its genre links in one
	// transaction. Genres are created-or-reused by name.
	CreateWithGenres(movie *models.Movie, genreNames []string) error

	// UpdateWithGenres persists field updates and, when genreNames is
	// non-nil, replaces all genre links, in one transaction.
	UpdateWithGenres(movie *models.Movie, genreNames []string) error

	// UpdateScheduleName stores (or clears) the external schedule handle.
	UpdateScheduleName(movieID string, name *string) error

	// Delete removes genre links, ratings and comments before the row
	// itself, in one transaction.
	Delete(movie *models.Movie) error
}

type MovieRepositoryImpl struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &MovieRepositoryImpl{db: db}
}

func (r *MovieRepositoryImpl) FindByID(id string) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.First(&movie, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (r *MovieRepositoryImpl) FindDetail(id string) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.
		Preload("Genres.Genre").
		Preload("Ratings").
		Preload("Comments", "parent_id IS NULL").
		Preload("Comments.User").
		Preload("Comments.Replies").
		Preload("User").
		First(&movie, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (r *MovieRepositoryImpl) List(q MovieQuery) ([]models.Movie, int64, error) {
	base := r.db.Model(&models.Movie{})
	for _, clause := range q.Clauses {
		base = base.Where(clause.Expr, clause.Args...)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movies []models.Movie
	err := base.Session(&gorm.Session{}).
		Preload("Genres.Genre").
		Preload("User").
		Order(q.Order).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func (r *MovieRepositoryImpl) CreateWithGenres(movie *models.Movie, genreNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movie).Error; err != nil {
			return err
		}
		return linkGenres(tx, movie.ID, genreNames)
	})
}

func (r *MovieRepositoryImpl) UpdateWithGenres(movie *models.Movie, genreNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(movie).Error; err != nil {
			return err
		}
		if genreNames == nil {
			return nil
		}
		if err := tx.Where("movie_id = ?", movie.ID).Delete(&models.MovieGenre{}).Error; err != nil {
			return err
		}
		return linkGenres(tx, movie.ID, genreNames)
	})
}

func (r *MovieRepositoryImpl) UpdateScheduleName(movieID string, name *string) error {
	return r.db.Model(&models.Movie{}).Where("id = ?", movieID).Update("schedule_name", name).Error
}

func (r *MovieRepositoryImpl) Delete(movie *models.Movie) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Links go first to avoid FK conflicts on the movie row.
		if err := tx.Where("movie_id = ?", movie.ID).Delete(&models.MovieGenre{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", movie.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", movie.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(movie).Error
	})
}

// linkGenres creates-or-reuses each genre by name and writes the join rows.
// Names are deduplicated so a repeated name never duplicates a link.
func linkGenres(tx *gorm.DB, movieID string, genreNames []string) error {
	seen := make(map[string]bool, len(genreNames))
	for _, name := range genreNames {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var genre models.Genre
		if err := tx.Where("name = ?", name).FirstOrCreate(&genre, models.Genre{Name: name}).Error; err != nil {
			return err
		}
		link := models.MovieGenre{MovieID: movieID, GenreID: genre.ID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
