package models

import (
	"time"

	"github.com/lib/pq"
)

type Movie struct {
	BaseModel
	Title            string     `gorm:"not null;index" json:"title"`
	Tagline          string     `gorm:"not null" json:"tagline"`
	OriginalTitle    string     `json:"originalTitle,omitempty"`
	Description      string     `gorm:"type:text" json:"description,omitempty"`
	ReleaseDate      *time.Time `json:"releaseDate,omitempty"`
	Duration         *int       `json:"duration,omitempty"` // minutes
	IndicativeRating *int       `json:"indicativeRating,omitempty"`
	Director         string     `json:"director,omitempty"`
	Language         string     `json:"language,omitempty"`
	Country          string     `json:"country,omitempty"`

	Actors    pq.StringArray `gorm:"type:text[]" json:"actors"`
	Producers pq.StringArray `gorm:"type:text[]" json:"producers"`

	Budget    *float64 `json:"budget,omitempty"`
	Revenue   *float64 `json:"revenue,omitempty"`
	Profit    *float64 `json:"profit,omitempty"`
	RatingAvg *float64 `json:"ratingAvg,omitempty"`

	Status     MovieStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	Visibility Visibility  `gorm:"type:varchar(20);not null;default:'PUBLIC';index" json:"visibility"`

	ImageCover  string `json:"imageCover,omitempty"`
	ImagePoster string `json:"imagePoster,omitempty"`
	LinkPreview string `json:"linkPreview,omitempty"`

	// Opaque handle of the externally registered release notification.
	ScheduleName *string `json:"scheduleName,omitempty"`

	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`

	Genres   []MovieGenre `gorm:"foreignKey:MovieID" json:"-"`
	Ratings  []Rating     `gorm:"foreignKey:MovieID" json:"-"`
	Comments []Comment    `gorm:"foreignKey:MovieID" json:"-"`
}

// Genre names are globally unique; linking never duplicates a genre row.
type Genre struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// MovieGenre is the join row between movies and genres.
type MovieGenre struct {
	MovieID string `gorm:"type:uuid;primaryKey" json:"movieId"`
	GenreID string `gorm:"type:uuid;primaryKey" json:"genreId"`
	Genre   *Genre `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
}

type Rating struct {
	BaseModel
	MovieID string  `gorm:"type:uuid;not null;index" json:"movieId"`
	UserID  string  `gorm:"type:uuid;not null" json:"userId"`
	Score   float64 `gorm:"not null" json:"score"`
}

// Comment threads are one level deep: a comment plus its direct replies.
type Comment struct {
	BaseModel
	MovieID  string    `gorm:"type:uuid;not null;index" json:"movieId"`
	UserID   string    `gorm:"type:uuid;not null" json:"userId"`
	ParentID *string   `gorm:"type:uuid;index" json:"parentId,omitempty"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	User     *User     `gorm:"foreignKey:UserID" json:"-"`
	Replies  []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}
