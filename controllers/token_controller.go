package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TokenController struct{ *Srv }

func NewTokenController(s *Srv) *TokenController { return &TokenController{Srv: s} }

// POST /admin/tokens  body 可为空
func (tc *TokenController) IssueToken(c *gin.Context) {
	var in struct {
		Label string `json:"label"`
	}
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, badRequest("invalid request: "+err.Error()))
		return
	}

	tok, err := tc.Tokens.Issue(c.Request.Context(), in.Label)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": tok})
}

// DELETE /admin/tokens/:token
func (tc *TokenController) RevokeToken(c *gin.Context) {
	id := c.Param("token")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}
	if err := tc.Tokens.Revoke(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /admin/tokens?label=
func (tc *TokenController) RevokeLabel(c *gin.Context) {
	label := c.Query("label")
	if label == "" {
		writeError(c, badRequest("label is required"))
		return
	}
	n, err := tc.Tokens.RevokeLabel(c.Request.Context(), label)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"label": label, "revoked": n})
}
