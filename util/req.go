package util

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	NotFoundTemplate = "core/404.html"
	ErrorTemplate    = "core/500.html"
)

type HTTPError struct {
	Status  int
	Message string
	Cause   error
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

func (he *HTTPError) Unwrap() error {
	return he.Cause
}

var (
	NotFoundHTTPErr = HTTPError{
		Message: "page not found",
		Status:  http.StatusNotFound,
	}
)

func BuildDbHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Message: "database error",
		Status:  http.StatusInternalServerError,
		Cause:   err,
	}
}

func BuildNotFoundHTTPErr(err error) *HTTPError {
	httpErr := NotFoundHTTPErr
	httpErr.Cause = err
	return &httpErr
}

func BuildFormBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Message: "malformed form",
		Status:  http.StatusBadRequest,
		Cause:   err,
	}
}

// ParseId parses a path id. Ids that are not integers match no route, hence 404.
func ParseId(val string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id < 1 {
		return 0, BuildNotFoundHTTPErr(err)
	}
	return id, nil
}

// Redirect is returned by handlers that answer with a 302
type Redirect struct {
	Location string
}

type HandlerOpts struct {
	// Template renders a gin.H returned by the handler
	Template string
}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		switch res := res.(type) {
		case *Redirect:
			c.Redirect(http.StatusFound, res.Location)
		case gin.H:
			c.HTML(http.StatusOK, opts.Template, res)
		case nil:
			c.Status(http.StatusNoContent)
		default:
			HandleHTTPErrorRes(c, &HTTPError{
				Status:  http.StatusInternalServerError,
				Message: "unexpected handler result",
				Cause:   fmt.Errorf("unexpected handler result %T", res),
			})
		}
	}
}

/*
HandleHTTPErrorRes renders the error page for the HTTP error.
break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	LogHTTPErr(c, err)
	template := ErrorTemplate
	if err.Status == http.StatusNotFound {
		template = NotFoundTemplate
	}
	c.HTML(err.Status, template, gin.H{
		"title":   http.StatusText(err.Status),
		"message": err.Message,
		"path":    c.Request.URL.Path,
	})
	c.Abort()
}

// LogHTTPErr logs server side failures. Client errors are not logged.
func LogHTTPErr(c *gin.Context, err *HTTPError) {
	if err.Status < http.StatusInternalServerError {
		return
	}
	zap.L().Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", err.Status),
		zap.String("message", err.Message),
		zap.Error(err.Cause))
}
