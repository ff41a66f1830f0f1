package handler

import (
	"errors"
	"net/http"
	"strconv"

	"moreview/internal/dto"
	"moreview/internal/service"
	"moreview/internal/storage"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	movieService service.MovieService
	imageStore   *storage.ImageStore
}

func NewMovieHandler(movieService service.MovieService, imageStore *storage.ImageStore) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
		imageStore:   imageStore,
	}
}

// RegisterRoutes registers catalog routes. The public group may carry an
// optional-auth middleware so detail views know the viewer; the admin group
// is authenticated and superuser-gated by its own middleware.
func (h *MovieHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/", h.ListPublic)
	public.GET("/movies/:id", h.Detail)
	public.GET("/tags", h.ListTags)

	admin.GET("/movies", h.ListManage)
	admin.POST("/movies", h.Create)
	admin.PUT("/movies/:id", h.Update)
	admin.DELETE("/movies/:id", h.Delete)
	admin.POST("/movies/:id/image", h.UploadImage)
	admin.POST("/tags", h.CreateTag)
}

// ListPublic lists movies with a poster.
// GET /?q=&order=oldest
func (h *MovieHandler) ListPublic(c *gin.Context) {
	movies, err := h.movieService.ListPublic(c.Query("q"), c.Query("order"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, movies)
}

// ListManage lists every movie for admins.
// GET /movies?q=
func (h *MovieHandler) ListManage(c *gin.Context) {
	movies, err := h.movieService.ListManage(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, movies)
}

// Detail returns the movie with its average rating and ordered reviews.
// GET /movies/:id?order=hearts_desc
func (h *MovieHandler) Detail(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie ID"})
		return
	}

	// Empty for anonymous viewers
	viewerID := c.GetString("userID")

	detail, err := h.movieService.GetDetail(movieID, viewerID, c.Query("order"))
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Create adds a catalog entry.
// POST /movies
func (h *MovieHandler) Create(c *gin.Context) {
	var req dto.CreateMovieDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := h.movieService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGrade), errors.Is(err, service.ErrInvalidDate):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTagNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, movie)
}

// Update edits a catalog entry.
// PUT /movies/:id
func (h *MovieHandler) Update(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie ID"})
		return
	}

	var req dto.UpdateMovieDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := h.movieService.Update(movieID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGrade), errors.Is(err, service.ErrInvalidDate):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrMovieNotFound), errors.Is(err, service.ErrTagNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, movie)
}

// Delete removes a movie and everything hanging off it.
// DELETE /movies/:id
func (h *MovieHandler) Delete(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie ID"})
		return
	}

	if err := h.movieService.Delete(movieID); err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "movie deleted successfully"})
}

// UploadImage stores a poster for the movie.
// POST /movies/:id/image (multipart, field "image")
func (h *MovieHandler) UploadImage(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie ID"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	path, err := h.imageStore.SaveMoviePoster(movieID, file)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImageType) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	movie, err := h.movieService.SetImage(movieID, path)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, movie)
}

// ListTags lists the movie category labels.
// GET /tags
func (h *MovieHandler) ListTags(c *gin.Context) {
	tags, err := h.movieService.ListTags()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tags)
}

// CreateTag adds a movie category label.
// POST /tags
func (h *MovieHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.movieService.CreateTag(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tag)
}
