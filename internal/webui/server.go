// Package webui serves the local browser front end: a single page with a
// single-file tab and a batch tab, backed by a small JSON API. Conversions
// run on background goroutines; the page polls job status.
package webui

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = "127.0.0.1:8340"

const shutdownTimeout = 5 * time.Second

//go:embed static/index.html
var indexHTML []byte

// Converter converts one file and owns its engine.
type Converter interface {
	html2pdf.FileConverter
	Close() error
}

// Pool is a closable converter pool.
type Pool interface {
	html2pdf.Pool
	Close() error
}

// Options supplies the conversion back ends.
type Options struct {
	NewConverter func() (Converter, error)
	NewPool      func(size int) Pool
}

// Server is the GUI HTTP server.
type Server struct {
	ctx    context.Context
	opts   Options
	jobs   *jobStore
	wg     sync.WaitGroup
	engine *gin.Engine
	token  string
	index  []byte
}

// New builds a Server. Background jobs stop when ctx is canceled.
func New(ctx context.Context, opts Options) *Server {
	s := &Server{ctx: ctx, opts: opts, jobs: newJobStore(), token: newToken()}
	s.index = bytes.ReplaceAll(indexHTML, []byte(tokenPlaceholder), []byte(s.token))

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/", s.handleIndex)
	api := r.Group("/api", guardAPI(s.token))
	api.POST("/single", s.handleSingle)
	api.POST("/batch", s.handleBatch)
	api.GET("/jobs/:id", s.handleJob)

	s.engine = r
	return s
}

// Handler exposes the router (tests, embedding).
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully and waits for running jobs.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.Wait()
		return err
	}
}

// Wait blocks until every background job has finished.
func (s *Server) Wait() {
	s.wg.Wait()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		html2pdf.Logger().Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.index)
}

func (s *Server) handleJob(c *gin.Context) {
	job, ok := s.jobs.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

type singleRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

func (s *Server) handleSingle(c *gin.Context) {
	var req singleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.Source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an HTML file."})
		return
	}
	if !fileutil.FileExists(req.Source) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "HTML file not found: " + req.Source})
		return
	}
	if req.Destination == "" {
		req.Destination = fileutil.PDFPath(req.Source)
	}
	if err := fileutil.EnsureParentDir(req.Destination); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create output directory: %v", err)})
		return
	}

	id := s.jobs.create("Converting " + req.Source + "...")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runSingle(id, req.Source, req.Destination)
	}()

	c.JSON(http.StatusAccepted, gin.H{"id": id})
}

func (s *Server) runSingle(id, source, destination string) {
	conv, err := s.opts.NewConverter()
	if err != nil {
		s.fail(id, "Conversion failed.", err)
		return
	}
	defer func() {
		if err := conv.Close(); err != nil {
			html2pdf.Logger().Warn("closing converter", "error", err)
		}
	}()

	res := conv.ConvertFile(s.ctx, source, destination)
	if !res.OK() {
		s.fail(id, "Conversion failed.", res.Err)
		return
	}

	s.jobs.update(id, func(j *Job) {
		j.State = JobDone
		j.Message = "Conversion successful! PDF saved to: " + res.Destination
		j.Completed, j.Total, j.Percent = 1, 1, 100
	})
}

type batchRequest struct {
	InputDir  string `json:"inputDir"`
	OutputDir string `json:"outputDir"`
	Workers   int    `json:"workers"`
}

func (s *Server) handleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.InputDir == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an input directory."})
		return
	}
	if !fileutil.DirExists(req.InputDir) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Input directory not found: " + req.InputDir})
		return
	}
	if req.OutputDir == "" {
		req.OutputDir = req.InputDir
	}
	if err := os.MkdirAll(req.OutputDir, fileutil.DirPerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create output directory: %v", err)})
		return
	}

	id := s.jobs.create("Scanning for HTML files in " + req.InputDir + "...")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runBatch(id, req)
	}()

	c.JSON(http.StatusAccepted, gin.H{"id": id})
}

func (s *Server) runBatch(id string, req batchRequest) {
	tasks, err := html2pdf.DiscoverTasks(req.InputDir, req.OutputDir, true)
	if err != nil {
		s.fail(id, "Batch conversion failed.", err)
		return
	}
	if len(tasks) == 0 {
		s.jobs.update(id, func(j *Job) {
			j.State = JobDone
			j.Percent = 100
			j.Message = "No HTML files found in " + req.InputDir
		})
		return
	}

	pool := s.opts.NewPool(min(html2pdf.ResolvePoolSize(req.Workers), len(tasks)))
	defer func() {
		if err := pool.Close(); err != nil {
			html2pdf.Logger().Warn("closing pool", "error", err)
		}
	}()

	report, err := html2pdf.ConvertAll(s.ctx, pool, html2pdf.BatchOptions{
		InputDir:  req.InputDir,
		OutputDir: req.OutputDir,
		Recursive: true,
		OnProgress: func(p html2pdf.Progress) {
			s.jobs.update(id, func(j *Job) {
				j.Completed, j.Total, j.Percent = p.Completed, p.Total, p.Percent()
				j.Message = fmt.Sprintf("Converting files: %d/%d", p.Completed, p.Total)
			})
		},
	})
	if err != nil {
		s.fail(id, "Batch conversion failed.", err)
		return
	}

	s.jobs.update(id, func(j *Job) {
		j.State = JobDone
		j.Total = report.Total
		j.Completed = report.Total
		j.Percent = 100
		if report.Failed == 0 {
			j.Message = fmt.Sprintf("Conversion complete. %d files converted.", report.Succeeded)
			return
		}
		j.State = JobFailed
		j.Message = fmt.Sprintf("Conversion complete. %d files converted, %d failed.", report.Succeeded, report.Failed)
		j.Error = report.Failures()[0].Err.Error()
	})
}

func (s *Server) fail(id, message string, err error) {
	s.jobs.update(id, func(j *Job) {
		j.State = JobFailed
		j.Message = message
		j.Error = err.Error()
	})
}
