package api

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storyreel/processor"
	"storyreel/types"
)

// JobStatus is the state of a submitted video request
type JobStatus struct {
	RequestID   string             `json:"request_id"`
	State       string             `json:"state"` // "queued", "running", "done"
	Stage       processor.Stage    `json:"stage,omitempty"`
	SubmittedAt time.Time          `json:"submitted_at"`
	Result      *types.VideoResult `json:"result,omitempty"`
}

type jobStore struct {
	mu   sync.RWMutex
	jobs map[string]*JobStatus
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[string]*JobStatus)}
}

func (j *jobStore) put(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jobs[status.RequestID] = &status
}

func (j *jobStore) update(id string, fn func(*JobStatus)) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if s, ok := j.jobs[id]; ok {
		fn(s)
	}
}

func (j *jobStore) get(id string) (JobStatus, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	s, ok := j.jobs[id]
	if !ok {
		return JobStatus{}, false
	}
	return *s, true
}

// RegisterVideoRoutes registers video submission endpoints.
func (s *Server) RegisterVideoRoutes(r *gin.Engine) {
	g := r.Group("/api/videos")
	g.POST("", s.handleSubmitVideo)
	g.GET("/:id", s.handleGetVideo)
	g.POST("/run", s.handleRun)
}

// handleSubmitVideo queues one post and returns 202 Accepted immediately.
func (s *Server) handleSubmitVideo(c *gin.Context) {
	var req types.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Post.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post title is required"})
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.Post.ID == "" {
		req.Post.ID = types.GenerateID(req.RequestID)
	}
	upload := s.upload
	if req.Upload != nil {
		upload = *req.Upload
	}

	s.jobs.put(JobStatus{RequestID: req.RequestID, State: "queued", SubmittedAt: time.Now()})
	log.Printf("📥 Received video request: %s", req.RequestID)

	go func(req types.VideoRequest) {
		s.jobs.update(req.RequestID, func(j *JobStatus) { j.State = "running" })
		track := processor.ProgressFunc(func(e processor.Event) {
			s.jobs.update(req.RequestID, func(j *JobStatus) { j.Stage = e.Stage })
		})
		result := s.processor.ProcessPost(s.ctx, req.Post, upload, track.Tracker(0, 1, req.Post))
		s.jobs.update(req.RequestID, func(j *JobStatus) {
			j.State = "done"
			j.Result = &result
		})
	}(req)

	c.JSON(http.StatusAccepted, gin.H{"request_id": req.RequestID, "status": "queued"})
}

func (s *Server) handleGetVideo(c *gin.Context) {
	status, ok := s.jobs.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown request id"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// handleRun starts a batch from the configured post source.
// It runs asynchronously and returns 202 Accepted immediately.
func (s *Server) handleRun(c *gin.Context) {
	if s.source == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no post source configured"})
		return
	}
	go func() {
		s.processor.Run(s.ctx, s.source, nil)
	}()
	c.JSON(http.StatusAccepted, gin.H{"status": "run started"})
}
