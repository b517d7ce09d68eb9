package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"storyreel/composition"
	"storyreel/processor"
	"storyreel/types"
)

// Planner previews composition plans
type Planner interface {
	Plan(req composition.PlanRequest) (*composition.CompositionPlan, error)
}

// Processor runs posts through the video pipeline; *processor.VideoProcessor implements it
type Processor interface {
	ProcessPost(ctx context.Context, post types.Post, upload bool, track processor.Tracker) types.VideoResult
	Run(ctx context.Context, source processor.PostSource, progress processor.ProgressFunc) []types.VideoResult
}

// Server holds the collaborators behind the HTTP routes
type Server struct {
	planner   Planner
	processor Processor
	source    processor.PostSource
	upload    bool
	jobs      *jobStore
	// ctx bounds background work started by requests
	ctx context.Context
}

// NewServer creates the API. Background jobs stop when ctx is canceled.
func NewServer(ctx context.Context, planner Planner, proc Processor, source processor.PostSource, upload bool) *Server {
	return &Server{
		planner:   planner,
		processor: proc,
		source:    source,
		upload:    upload,
		jobs:      newJobStore(),
		ctx:       ctx,
	}
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r)
	s.RegisterPlanRoutes(r)
	s.RegisterVideoRoutes(r)
	return r
}
