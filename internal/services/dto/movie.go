package dto

import (
	"io"
	"time"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
)

// MovieInput is the validated create payload. Handlers coerce the multipart
// form values into typed fields before validation.
type MovieInput struct {
	Title            string   `json:"title" validate:"required"`
	Tagline          string   `json:"tagline" validate:"required"`
	OriginalTitle    string   `json:"originalTitle"`
	Description      string   `json:"description" validate:"omitempty,max=2000"`
	ReleaseDate      *string  `json:"releaseDate"`
	Duration         *int     `json:"duration" validate:"omitempty,min=1"`
	IndicativeRating *int     `json:"indicativeRating" validate:"omitempty,min=0,max=18"`
	Director         string   `json:"director"`
	Language         string   `json:"language"`
	Country          string   `json:"country"`
	Actors           []string `json:"actors"`
	Producers        []string `json:"producers"`
	Budget           *float64 `json:"budget" validate:"omitempty,min=0"`
	Revenue          *float64 `json:"revenue" validate:"omitempty,min=0"`
	Profit           *float64 `json:"profit"`
	RatingAvg        *float64 `json:"ratingAvg" validate:"omitempty,min=0,max=100"`
	Status           string   `json:"status" validate:"omitempty,is-movie-status"`
	Visibility       string   `json:"visibility" validate:"omitempty,is-visibility"`
	ImageCover       string   `json:"imageCover" validate:"omitempty,url"`
	ImagePoster      string   `json:"imagePoster" validate:"omitempty,url"`
	LinkPreview      string   `json:"linkPreview" validate:"omitempty,url"`
	Genres           []string `json:"genres"`
}

// MovieUpdateInput is the partial update payload; nil fields keep the
// previous value. A nil Genres slice keeps the existing links.
type MovieUpdateInput struct {
	Title            *string   `json:"title" validate:"omitempty,min=1"`
	Tagline          *string   `json:"tagline" validate:"omitempty,min=1"`
	OriginalTitle    *string   `json:"originalTitle"`
	Description      *string   `json:"description" validate:"omitempty,max=2000"`
	ReleaseDate      *string   `json:"releaseDate"`
	Duration         *int      `json:"duration" validate:"omitempty,min=1"`
	IndicativeRating *int      `json:"indicativeRating" validate:"omitempty,min=0,max=18"`
	Director         *string   `json:"director"`
	Language         *string   `json:"language"`
	Country          *string   `json:"country"`
	Actors           []string  `json:"actors"`
	Producers        []string  `json:"producers"`
	Budget           *float64  `json:"budget" validate:"omitempty,min=0"`
	Revenue          *float64  `json:"revenue" validate:"omitempty,min=0"`
	Profit           *float64  `json:"profit"`
	RatingAvg        *float64  `json:"ratingAvg" validate:"omitempty,min=0,max=100"`
	Status           *string   `json:"status" validate:"omitempty,is-movie-status"`
	Visibility       *string   `json:"visibility" validate:"omitempty,is-visibility"`
	ImageCover       *string   `json:"imageCover" validate:"omitempty,url"`
	ImagePoster      *string   `json:"imagePoster" validate:"omitempty,url"`
	LinkPreview      *string   `json:"linkPreview" validate:"omitempty,url"`
	Genres           []string  `json:"genres"`
}

// ImageUpload is a binary image received in the multipart form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// MovieUploads carries the optional cover/poster files of a create or
// update request.
type MovieUploads struct {
	Cover  *ImageUpload
	Poster *ImageUpload
}

// MovieFilterRequest is the flat listing query surface.
type MovieFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status" validate:"omitempty,is-movie-status"`
	Visibility string `form:"visibility" validate:"omitempty,is-visibility"`
	Genre      string `form:"genre"`
	Director   string `form:"director"`

	MinDuration *int     `form:"minDuration" validate:"omitempty,min=0"`
	MaxDuration *int     `form:"maxDuration" validate:"omitempty,min=0"`
	MinBudget   *float64 `form:"minBudget" validate:"omitempty,min=0"`
	MaxBudget   *float64 `form:"maxBudget" validate:"omitempty,min=0"`
	MinRevenue  *float64 `form:"minRevenue" validate:"omitempty,min=0"`
	MaxRevenue  *float64 `form:"maxRevenue" validate:"omitempty,min=0"`
	MinProfit   *float64 `form:"minProfit"`
	MaxProfit   *float64 `form:"maxProfit"`
	MinRating   *float64 `form:"minRating" validate:"omitempty,min=0,max=100"`
	MaxRating   *float64 `form:"maxRating" validate:"omitempty,min=0,max=100"`
	ReleaseFrom *string  `form:"releaseFrom"`
	ReleaseTo   *string  `form:"releaseTo"`

	OrderBy string `form:"orderBy"`
	Order   string `form:"order" validate:"omitempty,is-sort-order"`

	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RatingResponse struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	Score  float64 `json:"score"`
}

type CommentResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	UserName  string            `json:"userName,omitempty"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"createdAt"`
	Replies   []CommentResponse `json:"replies,omitempty"`
}

// MovieResponse is the movie summary used by create/update/list/detail.
type MovieResponse struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Tagline          string             `json:"tagline"`
	OriginalTitle    string             `json:"originalTitle,omitempty"`
	Description      string             `json:"description,omitempty"`
	ReleaseDate      *time.Time         `json:"releaseDate,omitempty"`
	Duration         *int               `json:"duration,omitempty"`
	IndicativeRating *int               `json:"indicativeRating,omitempty"`
	Director         string             `json:"director,omitempty"`
	Language         string             `json:"language,omitempty"`
	Country          string             `json:"country,omitempty"`
	Actors           []string           `json:"actors"`
	Producers        []string           `json:"producers"`
	Budget           *float64           `json:"budget,omitempty"`
	Revenue          *float64           `json:"revenue,omitempty"`
	Profit           *float64           `json:"profit,omitempty"`
	RatingAvg        *float64           `json:"ratingAvg,omitempty"`
	Status           string             `json:"status"`
	Visibility       string             `json:"visibility"`
	ImageCover       string             `json:"imageCover,omitempty"`
	ImagePoster      string             `json:"imagePoster,omitempty"`
	LinkPreview      string             `json:"linkPreview,omitempty"`
	ScheduleName     *string            `json:"scheduleName,omitempty"`
	Genres           []GenreResponse    `json:"genres"`
	User             *models.PublicUser `json:"user,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// MovieDetailResponse adds ratings and threaded comments to the summary.
type MovieDetailResponse struct {
	MovieResponse
	Ratings  []RatingResponse  `json:"ratings"`
	Comments []CommentResponse `json:"comments"`
}

type ListMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type MovieListResponse struct {
	Data []MovieResponse `json:"data"`
	Meta ListMeta        `json:"meta"`
}

// NewMovieResponse flattens genre links to {id,name} pairs.
func NewMovieResponse(m *models.Movie) MovieResponse {
	genres := make([]GenreResponse, 0, len(m.Genres))
	for _, link := range m.Genres {
		if link.Genre == nil {
			continue
		}
		genres = append(genres, GenreResponse{ID: link.Genre.ID, Name: link.Genre.Name})
	}

	var owner *models.PublicUser
	if m.User != nil {
		pub := m.User.Public()
		owner = &pub
	}

	return MovieResponse{
		ID:               m.ID,
		Title:            m.Title,
		Tagline:          m.Tagline,
		OriginalTitle:    m.OriginalTitle,
		Description:      m.Description,
		ReleaseDate:      m.ReleaseDate,
		Duration:         m.Duration,
		IndicativeRating: m.IndicativeRating,
		Director:         m.Director,
		Language:         m.Language,
		Country:          m.Country,
		Actors:           m.Actors,
		Producers:        m.Producers,
		Budget:           m.Budget,
		Revenue:          m.Revenue,
		Profit:           m.Profit,
		RatingAvg:        m.RatingAvg,
		Status:           string(m.Status),
		Visibility:       string(m.Visibility),
		ImageCover:       m.ImageCover,
		ImagePoster:      m.ImagePoster,
		LinkPreview:      m.LinkPreview,
		ScheduleName:     m.ScheduleName,
		Genres:           genres,
		User:             owner,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// NewMovieDetailResponse maps the fully loaded record.
func NewMovieDetailResponse(m *models.Movie) MovieDetailResponse {
	ratings := make([]RatingResponse, 0, len(m.Ratings))
	for _, r := range m.Ratings {
		ratings = append(ratings, RatingResponse{ID: r.ID, UserID: r.UserID, Score: r.Score})
	}

	comments := make([]CommentResponse, 0, len(m.Comments))
	for _, c := range m.Comments {
		comments = append(comments, newCommentResponse(c))
	}

	return MovieDetailResponse{
		MovieResponse: NewMovieResponse(m),
		Ratings:       ratings,
		Comments:      comments,
	}
}

func newCommentResponse(c models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		resp.UserName = c.User.Name
	}
	for _, reply := range c.Replies {
		resp.Replies = append(resp.Replies, newCommentResponse(reply))
	}
	return resp
}
