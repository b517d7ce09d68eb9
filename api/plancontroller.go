package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storyreel/composition"
)

// RegisterPlanRoutes registers the plan preview endpoint.
func (s *Server) RegisterPlanRoutes(r *gin.Engine) {
	r.POST("/api/plan", s.handlePlan)
}

// handlePlan builds a composition plan without rendering it.
// Durations that cannot be planned are reported as 422.
func (s *Server) handlePlan(c *gin.Context) {
	var req composition.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := s.planner.Plan(req)
	switch {
	case errors.Is(err, composition.ErrInvalidDuration):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to plan video: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}
