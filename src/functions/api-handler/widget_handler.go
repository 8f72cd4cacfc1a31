package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maddiesch/serverless"
	"github.com/maddiesch/tago-user-manager/src/tago"
)

type ledgerHistory interface {
	EntriesForUser(ctx context.Context, userID string) ([]*tago.LedgerEntry, error)
}

func postWidgetHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		reportError(err)
		respondWithError(c, err)
		return
	}

	event := tago.Invocation{}
	if err := json.Unmarshal(body, &event); err != nil {
		respondWithError(c, &Error{
			Status: http.StatusBadRequest,
			Title:  "Bad Request",
			Detail: "The body is not a valid widget invocation",
			Code:   errCodeBadRequest,
		})
		return
	}

	serverless.GetLogger().Printf("Widget invocation from %s for %s", c.GetString(contextSubjectKey), event.Data.Origin())

	getRouter().Run(c.Request.Context(), event)

	c.Status(http.StatusNoContent)
}

func getUserHistoryHandler(c *gin.Context) {
	getRouter()
	if historyInstance == nil {
		respondWithError(c, tago.ErrRecordNotFound)
		return
	}

	entries, err := historyInstance.EntriesForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		reportError(err)
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"Entries": entries})
}
