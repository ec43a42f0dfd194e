package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eliaswen/goat/core/dsl"
	"github.com/eliaswen/goat/core/utils"
)

func (s *Server) handleCountExpression(c *gin.Context) {
	expression := c.Query("expr")
	if expression == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing count expression"})
		return
	}

	n, err := dsl.ParseCount(expression)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expression": expression,
		"count":      n,
		"formatted":  utils.FormatNumber(n),
	})
}
