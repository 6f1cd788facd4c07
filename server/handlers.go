package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	fetch_job_handler "github.com/devdashboard/devdashboard/collector/handler"
	"github.com/devdashboard/devdashboard/model"
	Logger "github.com/devdashboard/devdashboard/utils/log"
)

// ApiServer exposes the dashboard's REST surface: source and post management
// plus fetch triggers. Fetch triggers submit background work and return
// immediately; progress is observable through the status broadcast.
type ApiServer struct {
	DB      *gorm.DB
	Handler *fetch_job_handler.FetchJobHandler
}

func NewApiServer(db *gorm.DB, handler *fetch_job_handler.FetchJobHandler) *ApiServer {
	return &ApiServer{DB: db, Handler: handler}
}

func (s *ApiServer) RegisterRoutes(router *gin.Engine) {
	router.GET("/sources", s.ListSources)
	router.POST("/sources", s.CreateSource)
	router.POST("/sources/:id/fetch", s.FetchSource)
	router.POST("/refresh", s.RefreshAll)
	router.GET("/posts", s.ListPosts)
	router.PATCH("/posts/:id/status", s.UpdatePostStatus)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func (s *ApiServer) ListSources(c *gin.Context) {
	var sources []model.Source
	if err := s.DB.Order("name").Find(&sources).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sources)
}

type createSourceRequest struct {
	Name             string                 `json:"name" binding:"required"`
	SourceType       string                 `json:"source_type" binding:"required"`
	Url              string                 `json:"url"`
	Config           map[string]interface{} `json:"config"`
	Active           *bool                  `json:"active"`
	AutoFetchEnabled *bool                  `json:"auto_fetch_enabled"`
}

func (s *ApiServer) CreateSource(c *gin.Context) {
	var req createSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Url uniqueness is case-insensitive across all sources.
	if req.Url != "" {
		var count int64
		s.DB.Model(&model.Source{}).Where("lower(url) = lower(?)", req.Url).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "a source with this url already exists"})
			return
		}
	}

	source := model.Source{
		Id:               uuid.New().String(),
		Name:             req.Name,
		SourceType:       req.SourceType,
		Config:           datatypes.JSONMap(req.Config),
		Active:           true,
		AutoFetchEnabled: true,
	}
	if req.Url != "" {
		source.Url = &req.Url
	}
	if req.Active != nil {
		source.Active = *req.Active
	}
	if req.AutoFetchEnabled != nil {
		source.AutoFetchEnabled = *req.AutoFetchEnabled
	}

	if err := s.DB.Create(&source).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, source)
}

// FetchSource triggers one background fetch for one source.
func (s *ApiServer) FetchSource(c *gin.Context) {
	var source model.Source
	if err := s.DB.Where("id = ?", c.Param("id")).First(&source).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "source not found"})
		return
	}

	go s.Handler.FetchSource(context.Background(), &source)
	c.JSON(http.StatusAccepted, gin.H{"message": "fetch scheduled"})
}

// RefreshAll triggers a background refresh of all active sources.
func (s *ApiServer) RefreshAll(c *gin.Context) {
	go func() {
		if err := s.Handler.RefreshAllActive(context.Background()); err != nil {
			Logger.Log.Error("refresh all failed: ", err)
		}
	}()
	c.JSON(http.StatusAccepted, gin.H{"message": "refresh scheduled"})
}

func (s *ApiServer) ListPosts(c *gin.Context) {
	query := s.DB.Model(&model.Post{})
	if source := c.Query("source"); source != "" {
		query = query.Where("source = ?", source)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var posts []model.Post
	if err := query.Order("priority_score DESC NULLS LAST").Order("posted_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, posts)
}

type updatePostStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *ApiServer) UpdatePostStatus(c *gin.Context) {
	var req updatePostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !model.IsValidPostStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post status: " + req.Status})
		return
	}

	result := s.DB.Model(&model.Post{}).Where("id = ?", c.Param("id")).Update("status", req.Status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
