package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glebk/playmood/internal/domain"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Game Mental Health Analysis API"})
}

func (s *Server) handleGames(c *gin.Context) {
	names, err := s.analyzer.ListGames(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (s *Server) handleAnalyze(c *gin.Context) {
	name := c.Param("game_name")

	analysis, err := s.analyzer.AnalyzeGame(c.Request.Context(), name)
	if errors.Is(err, domain.ErrGameNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Detail: fmt.Sprintf("Game '%s' not found", name)})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.health != nil {
		if err := s.health.Ping(c.Request.Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
}
