package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type UpdatePricesRequest struct {
	// isin -> Yahoo symbol
	Symbols map[string]string `json:"symbols"`
	Start   string            `json:"start"`
}

func (m ApiHandler) updatePrices(c *gin.Context) {
	var requestBody UpdatePricesRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if len(requestBody.Symbols) == 0 {
		returnErrorJsonCode(fmt.Errorf("no symbols given"), c, 400)
		return
	}

	start := time.Now().UTC().AddDate(-5, 0, 0)
	if requestBody.Start != "" {
		parsed, err := time.Parse(time.DateOnly, requestBody.Start)
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid start date %q: %w", requestBody.Start, err), c, 400)
			return
		}
		start = parsed
	}

	tx, err := m.Db.Begin()
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to create transaction: %w", err), c)
		return
	}
	defer tx.Rollback()

	err = m.IngestService.IngestMany(context.Background(), tx, requestBody.Symbols, start)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	if err := tx.Commit(); err != nil {
		returnErrorJson(fmt.Errorf("failed to commit: %w", err), c)
		return
	}

	c.JSON(200, gin.H{"updated": len(requestBody.Symbols)})
}
