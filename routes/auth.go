package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/routepath"
	"github.com/navbryce/yatube/util"
	"go.uber.org/zap"
)

const loginTemplate = "users/login.html"

// FirebaseWebConfig is the public part of the Firebase project config that
// the login page needs to sign in with the Firebase JS SDK
type FirebaseWebConfig struct {
	APIKey     string
	AuthDomain string
	ProjectID  string
}

type authRoutes struct {
	userDB        db.UserDatabase
	authClient    middleware.AuthClient
	firebase      *FirebaseWebConfig
	sessionTTL    time.Duration
	secureCookies bool
}

func AddAuthRoutes(group *gin.RouterGroup, userDB db.UserDatabase, authClient middleware.AuthClient, firebase *FirebaseWebConfig, sessionTTL time.Duration, secureCookies bool) {
	routes := authRoutes{
		userDB:        userDB,
		authClient:    authClient,
		firebase:      firebase,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
	auth := group.Group("/auth")
	auth.GET("/login/", util.HandlerWrapper(routes.getLogin, &util.HandlerOpts{Template: loginTemplate}))
	auth.POST("/session/", util.HandlerWrapper(routes.createSession, &util.HandlerOpts{Template: loginTemplate}))
	auth.GET("/logout/", util.HandlerWrapper(routes.logout, &util.HandlerOpts{}))
}

type sessionReq struct {
	IdToken  string `form:"id_token"`
	Username string `form:"username"`
	Next     string `form:"next"`
}

func (ar *authRoutes) getLogin(c *gin.Context) (interface{}, *util.HTTPError) {
	return ar.renderLogin(c, c.Query("next"), ""), nil
}

func (ar *authRoutes) renderLogin(c *gin.Context, next string, loginErr string) gin.H {
	return gin.H{
		"title":    "Log in",
		"viewer":   middleware.GetUserMaybe(c),
		"next":     next,
		"error":    loginErr,
		"firebase": ar.firebase,
	}
}

// createSession exchanges a Firebase ID token for a session cookie. The
// first login of a Firebase account also creates its local user.
func (ar *authRoutes) createSession(c *gin.Context) (interface{}, *util.HTTPError) {
	var req sessionReq
	if err := c.ShouldBind(&req); err != nil {
		return nil, util.BuildFormBindHTTPErr(err)
	}
	if req.IdToken == "" {
		return ar.renderLogin(c, req.Next, "Sign in to continue"), nil
	}
	token, err := ar.authClient.VerifyIDToken(c, req.IdToken)
	if err != nil {
		zap.L().Debug("rejected id token", zap.Error(err))
		return ar.renderLogin(c, req.Next, "Sign in failed, try again"), nil
	}

	user, err := ar.userDB.GetUser(c, token.UID)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if user == nil {
		username := util.SanitizeText(req.Username)
		if username == "" {
			return ar.renderLogin(c, req.Next, "Choose a username"), nil
		}
		displayName, _ := token.Claims["name"].(string)
		err := ar.userDB.CreateUser(c, &model.User{
			Id:          token.UID,
			Username:    username,
			DisplayName: displayName,
		})
		if errors.Is(err, db.ErrDuplicate) {
			return ar.renderLogin(c, req.Next, "That username is taken"), nil
		}
		if err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
	}

	cookie, err := ar.authClient.SessionCookie(c, req.IdToken, ar.sessionTTL)
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "could not create the session",
			Cause:   err,
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, cookie, int(ar.sessionTTL.Seconds()), "/", "", ar.secureCookies, true)
	return &util.Redirect{Location: safeNext(req.Next)}, nil
}

func (ar *authRoutes) logout(c *gin.Context) (interface{}, *util.HTTPError) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", ar.secureCookies, true)
	return &util.Redirect{Location: routepath.Index}, nil
}

// safeNext only follows local paths
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return routepath.Index
	}
	return next
}
