package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GeoService interface {
	CreateGeoPoint(ctx context.Context, point models.GeoPoint, createdBy uuid.UUID) (*models.GeoPoint, error)
	UpdateGeoPoint(ctx context.Context, point models.GeoPoint, actor *models.User) (*models.GeoPoint, error)
	DeleteGeoPoint(ctx context.Context, id uuid.UUID, actor *models.User) error
	GeoPointByID(ctx context.Context, id uuid.UUID) (*models.GeoPoint, error)
	ListGeoPoints(ctx context.Context, filter models.GeoPointFilter) ([]models.GeoPoint, int, error)
	AttachMedia(ctx context.Context, id uuid.UUID, actor *models.User, filename string, reader io.Reader, size int64, contentType string) (*models.GeoPoint, error)
	MediaURLs(ctx context.Context, id uuid.UUID) ([]string, error)
}

type GeoHandler struct {
	log     logger.Log
	service GeoService
}

func NewGeoHandler(l logger.Log, s GeoService) *GeoHandler {
	return &GeoHandler{
		log:     l,
		service: s,
	}
}

type geoPointRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Coordinates models.Coordinates `json:"coordinates" binding:"required"`
	Type        string             `json:"type" binding:"required"`
	Tags        []string           `json:"tags"`
	LessonID    *uuid.UUID         `json:"lesson_id"`
	Facts       []string           `json:"facts"`
}

func (r geoPointRequest) toModel() models.GeoPoint {
	return models.GeoPoint{
		Title:       r.Title,
		Description: r.Description,
		Coordinates: r.Coordinates,
		Type:        r.Type,
		Tags:        r.Tags,
		LessonID:    r.LessonID,
		Facts:       r.Facts,
	}
}

func (h *GeoHandler) CreateGeoPoint(c *gin.Context) {
	var input geoPointRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	created, err := h.service.CreateGeoPoint(c.Request.Context(), input.toModel(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *GeoHandler) UpdateGeoPoint(c *gin.Context) {
	id, ok := parseIDParam(c, "point_id")
	if !ok {
		return
	}
	var input geoPointRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	point := input.toModel()
	point.ID = id
	updated, err := h.service.UpdateGeoPoint(c.Request.Context(), point, user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *GeoHandler) DeleteGeoPoint(c *gin.Context) {
	id, ok := parseIDParam(c, "point_id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.DeleteGeoPoint(c.Request.Context(), id, user); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *GeoHandler) GeoPointByID(c *gin.Context) {
	id, ok := parseIDParam(c, "point_id")
	if !ok {
		return
	}

	point, err := h.service.GeoPointByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, point)
}

func (h *GeoHandler) ListGeoPoints(c *gin.Context) {
	filter := models.GeoPointFilter{
		Type:   c.Query("type"),
		Tag:    c.Query("tag"),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}

	points, total, err := h.service.ListGeoPoints(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"geo_points": points, "total": total})
}

func (h *GeoHandler) UploadMedia(c *gin.Context) {
	id, ok := parseIDParam(c, "point_id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	updated, err := h.service.AttachMedia(
		c.Request.Context(),
		id,
		user,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *GeoHandler) MediaURLs(c *gin.Context) {
	id, ok := parseIDParam(c, "point_id")
	if !ok {
		return
	}

	urls, err := h.service.MediaURLs(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"urls": urls})
}
