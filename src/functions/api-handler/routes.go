package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func installRoutes(e *gin.Engine) {
	e.Handle("GET", "/", redirectToV1Handler)

	v1 := e.Group("/v1")
	{
		v1.Handle("GET", "/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })

		widget := v1.Group("/widget", Authenticate)
		{
			widget.Handle("POST", "", postWidgetHandler)
		}

		users := v1.Group("/users", Authenticate)
		{
			users.Handle("GET", "/:id/history", getUserHistoryHandler)
		}
	}
}

func redirectToV1Handler(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "/v1")
}
