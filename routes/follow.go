package routes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/routepath"
	"github.com/navbryce/yatube/util"
)

type followRoutes struct {
	graph *app.FollowGraph
}

func AddFollowRoutes(group *gin.RouterGroup, graph *app.FollowGraph) {
	routes := followRoutes{graph: graph}
	profiles := group.Group("/profile/:username", middleware.RequireAccount())
	profiles.GET("/follow/", util.HandlerWrapper(routes.follow, &util.HandlerOpts{}))
	profiles.GET("/unfollow/", util.HandlerWrapper(routes.unfollow, &util.HandlerOpts{}))
}

// follow always lands back on the profile. Following yourself or someone
// already followed changes nothing and is not reported.
func (fr *followRoutes) follow(c *gin.Context) (interface{}, *util.HTTPError) {
	username := c.Param("username")
	if err := fr.graph.Follow(c, middleware.MustGetUser(c), username); err != nil && !errors.Is(err, app.ErrSelfFollow) {
		return nil, buildAppHTTPErr(err)
	}
	return &util.Redirect{Location: routepath.Profile(username)}, nil
}

func (fr *followRoutes) unfollow(c *gin.Context) (interface{}, *util.HTTPError) {
	username := c.Param("username")
	if err := fr.graph.Unfollow(c, middleware.MustGetUser(c), username); err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return &util.Redirect{Location: routepath.Profile(username)}, nil
}
