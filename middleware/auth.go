package middleware

import (
	"context"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/routepath"
	"go.uber.org/zap"
)

const (
	USER_KEY = "user"

	SessionCookieName = "session"
)

// AuthClient is the part of *auth.Client the app uses
type AuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error)
}

var _ AuthClient = (*auth.Client)(nil)

// GenAuth resolves the viewer from the session cookie. It never rejects a
// request: an invalid or missing session leaves the viewer anonymous.
func GenAuth(userDB db.UserDatabase, authClient AuthClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionCookie, err := c.Cookie(SessionCookieName)
		if err != nil || sessionCookie == "" {
			return
		}
		token, err := authClient.VerifySessionCookie(c, sessionCookie)
		if err != nil {
			zap.L().Debug("rejected session cookie", zap.Error(err))
			return
		}

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			zap.L().Error("could not load session user", zap.String("uid", token.UID), zap.Error(err))
			return
		}
		if user != nil {
			c.Set(USER_KEY, user)
		}
	}
}

// RequireAccount sends anonymous viewers to the login page and back afterwards
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserMaybe(c) == nil {
			c.Redirect(http.StatusFound, routepath.LoginNext(c.Request.URL.RequestURI()))
			c.Abort()
		}
	}
}

// GetUserMaybe returns nil for anonymous viewers
func GetUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}

// MustGetUser is only valid behind RequireAccount
func MustGetUser(c *gin.Context) *model.User {
	user := GetUserMaybe(c)
	if user == nil {
		panic("MustGetUser called without RequireAccount")
	}
	return user
}
