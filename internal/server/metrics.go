package server

import (
	"net/http"

	metricsdomain "github.com/fortuna-labs/fortuna/internal/metrics/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) SaveMetric(c *gin.Context) {
	var event metricsdomain.MetricEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.metricsSvc.Record(c.Request.Context(), event); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}
