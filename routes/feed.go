package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/controllers"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/util"
)

type feedRoutes struct {
	feed  *app.FeedAssembler
	index *controllers.IndexController
}

func AddFeedRoutes(group *gin.RouterGroup, feed *app.FeedAssembler, index *controllers.IndexController) {
	routes := feedRoutes{feed: feed, index: index}
	group.GET("/", util.HandlerWrapper(routes.getIndex, &util.HandlerOpts{Template: "posts/index.html"}))
	group.GET("/group/:slug/", util.HandlerWrapper(routes.getGroupPosts, &util.HandlerOpts{Template: "posts/group_list.html"}))
	group.GET("/profile/:username/", util.HandlerWrapper(routes.getProfile, &util.HandlerOpts{Template: "posts/profile.html"}))
	group.GET("/follow/", middleware.RequireAccount(),
		util.HandlerWrapper(routes.getFollowIndex, &util.HandlerOpts{Template: "posts/follow.html"}))
}

func (fr *feedRoutes) getIndex(c *gin.Context) (interface{}, *util.HTTPError) {
	listing, err := fr.index.GetIndex(c, c.Query("page"))
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return gin.H{
		"title":   "Latest posts",
		"viewer":  middleware.GetUserMaybe(c),
		"listing": listing,
	}, nil
}

func (fr *feedRoutes) getGroupPosts(c *gin.Context) (interface{}, *util.HTTPError) {
	listing, err := fr.feed.Assemble(c, middleware.GetUserMaybe(c), &app.ListingRequest{
		Kind: app.ListingKindGroup,
		Slug: c.Param("slug"),
		Page: c.Query("page"),
	})
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return gin.H{
		"title":   listing.Group.Title,
		"viewer":  middleware.GetUserMaybe(c),
		"listing": listing,
	}, nil
}

func (fr *feedRoutes) getProfile(c *gin.Context) (interface{}, *util.HTTPError) {
	viewer := middleware.GetUserMaybe(c)
	listing, err := fr.feed.Assemble(c, viewer, &app.ListingRequest{
		Kind:     app.ListingKindProfile,
		Username: c.Param("username"),
		Page:     c.Query("page"),
	})
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return gin.H{
		"title":      listing.Author.Name(),
		"viewer":     viewer,
		"listing":    listing,
		"showFollow": listing.Following != nil,
		"following":  listing.Following != nil && *listing.Following,
	}, nil
}

func (fr *feedRoutes) getFollowIndex(c *gin.Context) (interface{}, *util.HTTPError) {
	listing, err := fr.feed.Assemble(c, middleware.MustGetUser(c), &app.ListingRequest{
		Kind: app.ListingKindFollow,
		Page: c.Query("page"),
	})
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return gin.H{
		"title":   "Subscriptions",
		"viewer":  middleware.MustGetUser(c),
		"listing": listing,
	}, nil
}
