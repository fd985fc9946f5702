package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services/dto"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/pkg/apperrors"
)

type MovieHandler struct {
	*BaseHandler
	movieService services.MovieService
}

func NewMovieHandler(base *BaseHandler, movieService services.MovieService) *MovieHandler {
	return &MovieHandler{BaseHandler: base, movieService: movieService}
}

// Create handles POST /movie/create. The payload arrives either as JSON or
// as a multipart form carrying the imageCover/imagePoster files.
func (h *MovieHandler) Create(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var input dto.MovieInput
	var uploads dto.MovieUploads

	if isMultipart(c) {
		parsed, files, closeFiles, err := h.parseCreateForm(c)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		defer closeFiles()
		input = parsed
		uploads = files

		if !h.Validate(c, &input) {
			return
		}
	} else if !h.BindAndValidate_JSON(c, &input) {
		return
	}

	resp, err := h.movieService.Create(c.Request.Context(), userID, input, uploads)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// List handles GET /movie/list. Anonymous callers see only published public
// movies.
func (h *MovieHandler) List(c *gin.Context) {
	var req dto.MovieFilterRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	callerID := callerIDOrEmpty(c)
	resp, err := h.movieService.List(c.Request.Context(), callerID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetByID handles GET /movie/:id.
func (h *MovieHandler) GetByID(c *gin.Context) {
	callerID := callerIDOrEmpty(c)
	resp, err := h.movieService.GetByID(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /movie/:id. Absent fields keep their stored value.
func (h *MovieHandler) Update(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var input dto.MovieUpdateInput
	var uploads dto.MovieUploads

	if isMultipart(c) {
		parsed, files, closeFiles, err := h.parseUpdateForm(c)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		defer closeFiles()
		input = parsed
		uploads = files

		if !h.Validate(c, &input) {
			return
		}
	} else if !h.BindAndValidate_JSON(c, &input) {
		return
	}

	resp, err := h.movieService.Update(c.Request.Context(), userID, c.Param("id"), input, uploads)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /movie/:id.
func (h *MovieHandler) Delete(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.movieService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Movie deleted successfully"})
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func callerIDOrEmpty(c *gin.Context) string {
	if userID, exists := c.Get("userID"); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}

// parseCreateForm coerces the multipart fields into the typed input. The
// returned cleanup closes any opened files and must be deferred by the
// caller.
func (h *MovieHandler) parseCreateForm(c *gin.Context) (dto.MovieInput, dto.MovieUploads, func(), error) {
	var input dto.MovieInput

	input.Title = c.PostForm("title")
	input.Tagline = c.PostForm("tagline")
	input.OriginalTitle = c.PostForm("originalTitle")
	input.Description = c.PostForm("description")
	input.Director = c.PostForm("director")
	input.Language = c.PostForm("language")
	input.Country = c.PostForm("country")
	input.Status = c.PostForm("status")
	input.Visibility = c.PostForm("visibility")
	input.LinkPreview = c.PostForm("linkPreview")
	input.Actors = formArray(c, "actors")
	input.Producers = formArray(c, "producers")
	input.Genres = formArray(c, "genres")

	if v, ok := c.GetPostForm("releaseDate"); ok {
		input.ReleaseDate = &v
	}

	var err error
	if input.Duration, err = formIntPtr(c, "duration"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	if input.IndicativeRating, err = formIntPtr(c, "indicativeRating"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	if input.Budget, err = formFloatPtr(c, "budget"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	if input.Revenue, err = formFloatPtr(c, "revenue"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	if input.Profit, err = formFloatPtr(c, "profit"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	if input.RatingAvg, err = formFloatPtr(c, "ratingAvg"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}

	uploads, closeFiles, err := formUploads(c)
	if err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	return input, uploads, closeFiles, nil
}

// parseUpdateForm is the presence-sensitive variant: only fields actually
// sent become non-nil.
func (h *MovieHandler) parseUpdateForm(c *gin.Context) (dto.MovieUpdateInput, dto.MovieUploads, func(), error) {
	var input dto.MovieUpdateInput

	setString := func(key string, dst **string) {
		if v, ok := c.GetPostForm(key); ok {
			*dst = &v
		}
	}
	setString("title", &input.Title)
	setString("tagline", &input.Tagline)
	setString("originalTitle", &input.OriginalTitle)
	setString("description", &input.Description)
	setString("releaseDate", &input.ReleaseDate)
	setString("director", &input.Director)
	setString("language", &input.Language)
	setString("country", &input.Country)
	setString("status", &input.Status)
	setString("visibility", &input.Visibility)
	setString("linkPreview", &input.LinkPreview)

	if formArrayPresent(c, "actors") {
		input.Actors = formArray(c, "actors")
	}
	if formArrayPresent(c, "producers") {
		input.Producers = formArray(c, "producers")
	}
	if formArrayPresent(c, "genres") {
		input.Genres = formArray(c, "genres")
	}

	var err error
	if input.Duration, err = formIntPtr(c, "duration"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	if input.IndicativeRating, err = formIntPtr(c, "indicativeRating"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	if input.Budget, err = formFloatPtr(c, "budget"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	if input.Revenue, err = formFloatPtr(c, "revenue"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	if input.Profit, err = formFloatPtr(c, "profit"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	if input.RatingAvg, err = formFloatPtr(c, "ratingAvg"); err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}

	uploads, closeFiles, err := formUploads(c)
	if err != nil {
		return input, dto.MovieUploads{}, func() {}, err
	}
	return input, uploads, closeFiles, nil
}

// formUploads opens the optional imageCover/imagePoster files.
func formUploads(c *gin.Context) (dto.MovieUploads, func(), error) {
	var uploads dto.MovieUploads
	var opened []multipart.File

	closeFiles := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, field := range []struct {
		name string
		dst  **dto.ImageUpload
	}{
		{"imageCover", &uploads.Cover},
		{"imagePoster", &uploads.Poster},
	} {
		header, err := c.FormFile(field.name)
		if err != nil {
			if err == http.ErrMissingFile {
				continue
			}
			closeFiles()
			return dto.MovieUploads{}, func() {}, apperrors.NewBadRequestError("Invalid " + field.name + " file")
		}

		file, err := header.Open()
		if err != nil {
			closeFiles()
			return dto.MovieUploads{}, func() {}, apperrors.InternalError(err)
		}
		opened = append(opened, file)

		*field.dst = &dto.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Reader:      file,
		}
	}

	return uploads, closeFiles, nil
}

// formArray reads a repeated field, splitting comma-separated values so
// both actors=a&actors=b and actors=a,b are accepted. Indexed object keys
// (genres[0].name, genres[1].name, ...) take precedence when present.
func formArray(c *gin.Context, key string) []string {
	if indexed := formIndexed(c, key); len(indexed) > 0 {
		return indexed
	}

	values := c.PostFormArray(key)
	if len(values) == 0 {
		values = c.PostFormArray(key + "[]")
	}

	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// formIndexed collects key[0].name, key[1].name, ... (or bare key[0],
// key[1], ...) in index order, stopping at the first gap.
func formIndexed(c *gin.Context, key string) []string {
	var out []string
	for i := 0; ; i++ {
		v, ok := c.GetPostForm(fmt.Sprintf("%s[%d].name", key, i))
		if !ok {
			v, ok = c.GetPostForm(fmt.Sprintf("%s[%d]", key, i))
		}
		if !ok {
			return out
		}
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
}

// formArrayPresent reports whether the field was sent in any of the shapes
// formArray understands.
func formArrayPresent(c *gin.Context, key string) bool {
	if _, ok := c.GetPostForm(key); ok {
		return true
	}
	if len(c.PostFormArray(key+"[]")) > 0 {
		return true
	}
	return len(formIndexed(c, key)) > 0
}

func formIntPtr(c *gin.Context, key string) (*int, error) {
	v, ok := c.GetPostForm(key)
	if !ok || v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Field '" + key + "' must be an integer")
	}
	return &n, nil
}

func formFloatPtr(c *gin.Context, key string) (*float64, error) {
	v, ok := c.GetPostForm(key)
	if !ok || v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Field '" + key + "' must be a number")
	}
	return &f, nil
}
