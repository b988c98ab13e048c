package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"creator-finance/internal/apperr"
	"creator-finance/internal/platforms"
)

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("%s must be an integer", key)
	}
	return n, nil
}

// GET /api/platforms?month=&year=
func (s *Server) listPlatforms(c *gin.Context) {
	month, err := queryInt(c, "month")
	if err != nil {
		respondError(c, err)
		return
	}
	year, err := queryInt(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}

	shares, err := s.platforms.Distribution(c.Request.Context(), currentUserID(c), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, shares)
}

// POST /api/platforms
func (s *Server) reportPlatform(c *gin.Context) {
	var input struct {
		PlatformName string          `json:"platform_name"`
		Revenue      decimal.Decimal `json:"revenue"`
		Month        *int            `json:"month"`
		Year         *int            `json:"year"`
	}
	if err := bindJSON(c, s.schemas.platformReport, &input); err != nil {
		respondError(c, err)
		return
	}

	report := platforms.RevenueReport{Platform: input.PlatformName, Revenue: input.Revenue}
	if input.Month != nil {
		report.Month = *input.Month
	}
	if input.Year != nil {
		report.Year = *input.Year
	}

	row, err := s.platforms.Report(c.Request.Context(), currentUserID(c), report)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, gin.H{"message": "Platform revenue updated successfully", "platform": row})
}
