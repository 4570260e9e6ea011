package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pomoplan/internal/sync"
)

const maxBodySize = 1 << 20 // 1MB

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSync dispatches a push or pull envelope. Failures use the structured
// {error, code, details} shape so clients can recover programmatically.
func (s *Server) handleSync(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize))
	if err != nil {
		s.fail(c, http.StatusBadRequest, sync.CodeValidation, "unreadable request body", nil)
		return
	}

	req, err := sync.DecodeRequest(body)
	if err != nil {
		s.fail(c, http.StatusBadRequest, sync.CodeValidation, err.Error(), nil)
		return
	}

	if req.Push != nil {
		s.handlePush(c, req.Push)
		return
	}
	s.handlePull(c, req.Pull)
}

func (s *Server) handlePush(c *gin.Context, req *sync.PushRequest) {
	resp, err := s.engine.ApplyPush(c.Request.Context(), req)

	var gap *sync.SequenceGapError
	switch {
	case errors.As(err, &gap):
		s.fail(c, http.StatusConflict, sync.CodeSequenceGap, gap.Error(), gin.H{
			"lastMutationID": gap.LastMutationID,
			"expected":       gap.Expected,
			"got":            gap.Got,
		})
	case errors.Is(err, sync.ErrValidation):
		details := gin.H{}
		if resp != nil {
			details["lastMutationID"] = resp.LastMutationID
		}
		s.fail(c, http.StatusBadRequest, sync.CodeValidation, err.Error(), details)
	case err != nil:
		s.logger.Error("push failed", "clientID", req.ClientID, "error", err)
		s.fail(c, http.StatusInternalServerError, sync.CodeInternal, "internal error", nil)
	default:
		c.JSON(http.StatusOK, resp)
	}
}

func (s *Server) handlePull(c *gin.Context, req *sync.PullRequest) {
	resp, err := s.engine.ApplyPull(c.Request.Context(), req)
	switch {
	case errors.Is(err, sync.ErrValidation):
		s.fail(c, http.StatusBadRequest, sync.CodeValidation, err.Error(), nil)
	case err != nil:
		s.logger.Error("pull failed", "clientID", req.ClientID, "error", err)
		s.fail(c, http.StatusInternalServerError, sync.CodeInternal, "internal error", nil)
	default:
		c.JSON(http.StatusOK, resp)
	}
}

func (s *Server) fail(c *gin.Context, status int, code, message string, details gin.H) {
	body := gin.H{"error": message, "code": code}
	if len(details) > 0 {
		body["details"] = details
	}
	c.JSON(status, body)
}
