// Package ui exposes the upload-and-analyze HTTP surface. The server holds
// the caller-side session state (the currently uploaded dataset); the
// analysis engine itself stays stateless.
package ui

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"outlierscope/domain/core"
	"outlierscope/domain/outlier"
	"outlierscope/domain/table"
	"outlierscope/internal"
	"outlierscope/internal/analyze"
	"outlierscope/internal/config"
	"outlierscope/internal/ingest"
	"outlierscope/internal/profile"

	"github.com/gin-gonic/gin"
)

// ReportStore is the persistence surface the server needs. A nil store
// disables persistence entirely.
type ReportStore interface {
	Save(ctx context.Context, sr *outlier.StoredReport) error
	GetByID(ctx context.Context, id core.ReportID) (*outlier.StoredReport, error)
	ListRecent(ctx context.Context, limit int) ([]*outlier.StoredReport, error)
}

// Server wires the ingestion, profiling and analysis collaborators behind
// a gin router.
type Server struct {
	router   *gin.Engine
	engine   *analyze.Engine
	profiler *profile.Profiler
	store    ReportStore
	cfg      *config.Config
	logger   *internal.Logger

	// Current session dataset, replaced wholesale on each upload.
	mu        sync.RWMutex
	current   *table.DataSet
	currentID core.DatasetID
	source    string
}

// NewServer creates the server and registers its routes.
func NewServer(cfg *config.Config, store ReportStore, logger *internal.Logger) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:   gin.Default(),
		engine:   analyze.New(),
		profiler: profile.NewProfiler(),
		store:    store,
		cfg:      cfg,
		logger:   logger.Tagged("Server"),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.POST("/datasets", s.handleUpload)
	api.POST("/analysis", s.handleAnalyze)
	api.GET("/reports", s.handleListReports)
	api.GET("/reports/:id", s.handleGetReport)
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	addr := ":" + s.cfg.Server.Port
	s.logger.Info("listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleUpload ingests a spreadsheet into the session dataset and returns
// its metadata plus per-column profiles.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	if fileHeader.Size > s.cfg.Upload.MaxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds %d byte limit", s.cfg.Upload.MaxFileSize),
		})
		return
	}

	tempPath := filepath.Join(s.cfg.Upload.TempDir,
		fmt.Sprintf("upload_%s_%s", core.NewID(), filepath.Base(fileHeader.Filename)))
	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	defer os.Remove(tempPath)

	raw, err := ingest.NewReader(tempPath).Read()
	if err != nil {
		s.logger.Warn("upload parse failed for %s: %v", fileHeader.Filename, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ds, summary, err := ingest.BuildDataSet(raw)
	if err != nil {
		s.logger.Warn("coercion failed for %s: %v", fileHeader.Filename, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	profiles, err := s.profiler.ProfileDataSet(c.Request.Context(), ds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profiling failed"})
		return
	}

	datasetID := core.DatasetID(core.NewID())
	s.mu.Lock()
	s.current = ds
	s.currentID = datasetID
	s.source = fileHeader.Filename
	s.mu.Unlock()

	s.logger.Info("dataset %s ready: %s (%d columns, %d rows, %d dropped)",
		datasetID, fileHeader.Filename, ds.Dimensions, ds.Size(), summary.RowsDropped)

	c.JSON(http.StatusCreated, gin.H{
		"dataset_id": datasetID,
		"headers":    ds.Headers,
		"dimensions": ds.Dimensions,
		"row_count":  ds.Size(),
		"summary":    summary,
		"profiles":   profiles,
	})
}

// handleAnalyze runs every detection method over the session dataset.
func (s *Server) handleAnalyze(c *gin.Context) {
	s.mu.RLock()
	ds := s.current
	datasetID := s.currentID
	source := s.source
	s.mu.RUnlock()

	if ds == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no dataset uploaded"})
		return
	}

	report, err := s.engine.Run(ds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stored := outlier.NewStoredReport(datasetID, source, ds.Dimensions, ds.Size(), report)
	if s.store != nil {
		if err := s.store.Save(c.Request.Context(), stored); err != nil {
			// Persistence failure should not lose a finished report.
			s.logger.Error("failed to persist report %s: %v", stored.ID, err)
		}
	}

	s.logger.Info("analysis %s complete: %d methods, %d flags",
		stored.ID, len(report), report.TotalFlagged())
	c.JSON(http.StatusOK, stored)
}

func (s *Server) handleListReports(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "report store not configured"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	reports, err := s.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (s *Server) handleGetReport(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "report store not configured"})
		return
	}

	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	c.JSON(http.StatusOK, report)
}
