package http

import (
	"github.com/gin-gonic/gin"
)

// GET /api/dashboard
func (s *Server) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := s.ledger.Summary(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	summary.Name = user.Name
	summary.Email = user.Email

	c.JSON(200, summary)
}

// GET /api/monthly-trend
func (s *Server) monthlyTrend(c *gin.Context) {
	points, err := s.ledger.MonthlyTrend(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, points)
}

// GET /api/profile
func (s *Server) profile(c *gin.Context) {
	user, err := s.users.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}
