package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/util"
)

type healthRoutes struct {
	db db.Database
}

func AddHealthCheckRoutes(group *gin.RouterGroup, db db.Database) {
	routes := healthRoutes{db}
	health := group.Group("/health")
	health.GET("", routes.aliveCheck)
}

// aliveCheck answers 204 while the store is reachable
func (hr *healthRoutes) aliveCheck(c *gin.Context) {
	if err := hr.db.Ping(c); err != nil {
		util.LogHTTPErr(c, &util.HTTPError{
			Status:  http.StatusServiceUnavailable,
			Message: "store unreachable",
			Cause:   err,
		})
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.Status(http.StatusNoContent)
}
