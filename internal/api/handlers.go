package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "member-qa/internal/common/errors"
	"member-qa/internal/common/logger"
	"member-qa/internal/models"
)

func (s *Server) ask(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindQuery(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusUnprocessableEntity, apperrors.NewQuestionRequiredError())
		return
	}

	ctx := logger.IntoContext(c.Request.Context(), requestLogger(c, s.logger))
	res := s.answerer.Answer(ctx, req.Question)
	c.JSON(http.StatusOK, models.AskResponse{Answer: res.Answer})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) ready(c *gin.Context) {
	if s.answerer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

func (s *Server) envInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.env)
}

func (s *Server) debugMessages(c *gin.Context) {
	if s.prober == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no message source configured"})
		return
	}
	c.JSON(http.StatusOK, s.prober.Probe(c.Request.Context()))
}
