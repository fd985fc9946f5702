package repositories

import (
	"strings"
	"time"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
)

// MovieFilter is the flat set of optional listing parameters. Nil/empty
// fields are simply omitted from the resulting predicate.
type MovieFilter struct {
	Search     string
	Status     string
	Visibility string
	Genre      string
	Director   string

	MinDuration *int
	MaxDuration *int
	MinBudget   *float64
	MaxBudget   *float64
	MinRevenue  *float64
	MaxRevenue  *float64
	MinProfit   *float64
	MaxProfit   *float64
	MinRating   *float64
	MaxRating   *float64
	ReleaseFrom *time.Time
	ReleaseTo   *time.Time

	OrderBy string
	Order   string // asc | desc

	Page  int
	Limit int
}

// Clause is one SQL condition with its bind arguments. Clauses are combined
// with AND by the repository.
type Clause struct {
	Expr string
	Args []interface{}
}

// MovieQuery is the immutable predicate tree built from a MovieFilter plus
// the caller identity: a list of required clauses, an ordering and a page
// window. Nothing mutates it after construction.
type MovieQuery struct {
	Clauses []Clause
	Order   string
	Page    int
	Limit   int
	Offset  int
}

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Listing order is restricted to an allow-listed field set; anything else
// falls back to newest-created-first.
var orderableColumns = map[string]string{
	"createdAt":   "created_at",
	"title":       "title",
	"releaseDate": "release_date",
	"duration":    "duration",
	"ratingAvg":   "rating_avg",
	"budget":      "budget",
	"revenue":     "revenue",
	"profit":      "profit",
}

// BuildMovieQuery translates the filter and the caller identity into the
// predicate evaluated by the storage layer. callerID is empty for anonymous
// callers.
//
// The access policy is one invariant disjunction ANDed with every explicit
// filter: a row is reachable when (status=PUBLISHED AND visibility=PUBLIC)
// OR it is owned by the caller. Explicit status/visibility filters narrow
// that set and never widen it: filtering by visibility=PRIVATE yields only
// the caller's own private movies, and visibility=PUBLIC yields
// published-public rows plus the caller's own public-flagged drafts.
func BuildMovieQuery(f MovieFilter, callerID string) MovieQuery {
	q := MovieQuery{}

	if callerID != "" {
		q.Clauses = append(q.Clauses, Clause{
			Expr: "((status = ? AND visibility = ?) OR user_id = ?)",
			Args: []interface{}{models.MovieStatusPublished, models.VisibilityPublic, callerID},
		})
	} else {
		q.Clauses = append(q.Clauses, Clause{
			Expr: "(status = ? AND visibility = ?)",
			Args: []interface{}{models.MovieStatusPublished, models.VisibilityPublic},
		})
	}

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q.Clauses = append(q.Clauses, Clause{
			Expr: "(title ILIKE ? OR original_title ILIKE ? OR tagline ILIKE ? OR description ILIKE ? OR director ILIKE ?)",
			Args: []interface{}{like, like, like, like, like},
		})
	}

	if f.Status != "" {
		q.Clauses = append(q.Clauses, Clause{Expr: "status = ?", Args: []interface{}{f.Status}})
	}
	if f.Visibility != "" {
		q.Clauses = append(q.Clauses, Clause{Expr: "visibility = ?", Args: []interface{}{f.Visibility}})
	}
	if f.Director != "" {
		q.Clauses = append(q.Clauses, Clause{Expr: "director ILIKE ?", Args: []interface{}{"%" + f.Director + "%"}})
	}
	if f.Genre != "" {
		q.Clauses = append(q.Clauses, Clause{
			Expr: "EXISTS (SELECT 1 FROM movie_genres mg JOIN genres g ON g.id = mg.genre_id WHERE mg.movie_id = movies.id AND LOWER(g.name) = LOWER(?))",
			Args: []interface{}{f.Genre},
		})
	}

	// Range bounds are inclusive; an absent side stays open-ended.
	q.Clauses = appendRange(q.Clauses, "duration", f.MinDuration, f.MaxDuration)
	q.Clauses = appendRange(q.Clauses, "budget", f.MinBudget, f.MaxBudget)
	q.Clauses = appendRange(q.Clauses, "revenue", f.MinRevenue, f.MaxRevenue)
	q.Clauses = appendRange(q.Clauses, "profit", f.MinProfit, f.MaxProfit)
	q.Clauses = appendRange(q.Clauses, "rating_avg", f.MinRating, f.MaxRating)
	if f.ReleaseFrom != nil {
		q.Clauses = append(q.Clauses, Clause{Expr: "release_date >= ?", Args: []interface{}{*f.ReleaseFrom}})
	}
	if f.ReleaseTo != nil {
		q.Clauses = append(q.Clauses, Clause{Expr: "release_date <= ?", Args: []interface{}{*f.ReleaseTo}})
	}

	q.Order = buildOrder(f.OrderBy, f.Order)

	q.Page = f.Page
	if q.Page < 1 {
		q.Page = defaultPage
	}
	q.Limit = f.Limit
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	q.Offset = (q.Page - 1) * q.Limit

	return q
}

func appendRange[T int | float64](clauses []Clause, column string, min, max *T) []Clause {
	if min != nil {
		clauses = append(clauses, Clause{Expr: column + " >= ?", Args: []interface{}{*min}})
	}
	if max != nil {
		clauses = append(clauses, Clause{Expr: column + " <= ?", Args: []interface{}{*max}})
	}
	return clauses
}

func buildOrder(orderBy, order string) string {
	column, ok := orderableColumns[orderBy]
	if !ok {
		return "created_at DESC"
	}
	direction := "ASC"
	if strings.EqualFold(order, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}
