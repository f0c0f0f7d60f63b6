package routes

import (
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/controllers"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/services"
	"github.com/navbryce/yatube/templates"
	"github.com/navbryce/yatube/util"
)

type Deps struct {
	DB          db.Database
	Feed        *app.FeedAssembler
	Follows     *app.FollowGraph
	Index       *controllers.IndexController
	Groups      *controllers.GroupController
	AuthClient  middleware.AuthClient
	Attachments services.AttachmentStore
	// Firebase configures the login page. Nil leaves it without a sign in widget.
	Firebase *FirebaseWebConfig

	SessionTTL    time.Duration
	SecureCookies bool
}

// Register mounts every page of the site on r
func Register(r *gin.Engine, deps *Deps) error {
	tmpl, err := templates.Load(template.FuncMap{
		"imageURL": deps.Attachments.URL,
	})
	if err != nil {
		return fmt.Errorf("error loading templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(middleware.GenAuth(deps.DB, deps.AuthClient))
	AddHealthCheckRoutes(&r.RouterGroup, deps.DB)
	AddAuthRoutes(&r.RouterGroup, deps.DB, deps.AuthClient, deps.Firebase, deps.SessionTTL, deps.SecureCookies)
	AddFeedRoutes(&r.RouterGroup, deps.Feed, deps.Index)
	AddFollowRoutes(&r.RouterGroup, deps.Follows)
	AddPostRoutes(&r.RouterGroup, deps.Feed, deps.Groups, deps.Attachments)
	if media, ok := deps.Attachments.(*services.MemoryAttachmentStore); ok {
		AddMediaRoutes(&r.RouterGroup, media)
	}

	r.NoRoute(func(c *gin.Context) {
		util.HandleHTTPErrorRes(c, &util.NotFoundHTTPErr)
	})
	return nil
}
