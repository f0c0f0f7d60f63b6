package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/services"
	"github.com/navbryce/yatube/util"
	"go.uber.org/zap"
)

const (
	postDetailTemplate = "posts/post_detail.html"
	postFormTemplate   = "posts/create_post.html"
)

// groupLister supplies the group choices of the post form
type groupLister interface {
	Groups(ctx context.Context) ([]*model.Group, error)
}

type postRoutes struct {
	feed        *app.FeedAssembler
	groups      groupLister
	attachments services.AttachmentStore
}

func AddPostRoutes(group *gin.RouterGroup, feed *app.FeedAssembler, groups groupLister, attachments services.AttachmentStore) {
	routes := postRoutes{feed: feed, groups: groups, attachments: attachments}
	group.GET("/posts/:id/", util.HandlerWrapper(routes.getPostDetail, &util.HandlerOpts{Template: postDetailTemplate}))

	accountOnly := group.Group("", middleware.RequireAccount())
	accountOnly.GET("/create/", util.HandlerWrapper(routes.getCreateForm, &util.HandlerOpts{Template: postFormTemplate}))
	accountOnly.POST("/create/", util.HandlerWrapper(routes.createPost, &util.HandlerOpts{Template: postFormTemplate}))
	accountOnly.GET("/posts/:id/edit/", util.HandlerWrapper(routes.getEditForm, &util.HandlerOpts{Template: postFormTemplate}))
	accountOnly.POST("/posts/:id/edit/", util.HandlerWrapper(routes.editPost, &util.HandlerOpts{Template: postFormTemplate}))
	accountOnly.POST("/posts/:id/comment/", util.HandlerWrapper(routes.addComment, &util.HandlerOpts{Template: postDetailTemplate}))
}

type postFormReq struct {
	Text  string `form:"text"`
	Group string `form:"group"`
}

type commentReq struct {
	Text string `form:"text"`
}

func (pr *postRoutes) getPostDetail(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	return pr.renderPostDetail(c, postId, nil)
}

func (pr *postRoutes) renderPostDetail(c *gin.Context, postId int64, errs map[string]string) (gin.H, *util.HTTPError) {
	detail, err := pr.feed.PostDetail(c, postId)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	viewer := middleware.GetUserMaybe(c)
	return gin.H{
		"title":   detail.Post.Excerpt(),
		"viewer":  viewer,
		"detail":  detail,
		"canEdit": detail.Post.IsAuthoredBy(viewer),
		"errors":  errs,
	}, nil
}

func (pr *postRoutes) getCreateForm(c *gin.Context) (interface{}, *util.HTTPError) {
	return pr.renderPostForm(c, &app.PostForm{}, false, nil)
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	form, errs, httpErr := pr.bindPostForm(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if errs != nil {
		return pr.renderPostForm(c, form, false, errs)
	}
	outcome, err := pr.feed.CreatePost(c, middleware.MustGetUser(c), form)
	if err != nil {
		if errs := formErrors(err); errs != nil {
			return pr.renderPostForm(c, form, false, errs)
		}
		return nil, buildAppHTTPErr(err)
	}
	return &util.Redirect{Location: outcome.RedirectTarget}, nil
}

func (pr *postRoutes) getEditForm(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	outcome, err := pr.feed.AuthorizeEdit(c, middleware.MustGetUser(c), postId)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	if !outcome.Allowed() {
		return &util.Redirect{Location: outcome.RedirectTarget}, nil
	}
	var groupId *int64
	if outcome.Post.Group != nil {
		groupId = &outcome.Post.Group.Id
	}
	return pr.renderPostForm(c, &app.PostForm{
		Text:    outcome.Post.Text,
		GroupId: groupId,
		Image:   outcome.Post.Image,
	}, true, nil)
}

func (pr *postRoutes) editPost(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	viewer := middleware.MustGetUser(c)
	// non-authors are turned away before anything gets uploaded
	outcome, err := pr.feed.AuthorizeEdit(c, viewer, postId)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	if !outcome.Allowed() {
		return &util.Redirect{Location: outcome.RedirectTarget}, nil
	}

	form, errs, httpErr := pr.bindPostForm(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if errs != nil {
		return pr.renderPostForm(c, form, true, errs)
	}
	outcome, err = pr.feed.EditPost(c, viewer, postId, form)
	if err != nil {
		if errs := formErrors(err); errs != nil {
			return pr.renderPostForm(c, form, true, errs)
		}
		return nil, buildAppHTTPErr(err)
	}
	return &util.Redirect{Location: outcome.RedirectTarget}, nil
}

func (pr *postRoutes) addComment(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req commentReq
	if err := c.ShouldBind(&req); err != nil {
		return nil, util.BuildFormBindHTTPErr(err)
	}
	outcome, err := pr.feed.AddComment(c, middleware.MustGetUser(c), postId, req.Text)
	if err != nil {
		if errs := formErrors(err); errs != nil {
			return pr.renderPostDetail(c, postId, errs)
		}
		return nil, buildAppHTTPErr(err)
	}
	return &util.Redirect{Location: outcome.RedirectTarget}, nil
}

func (pr *postRoutes) renderPostForm(c *gin.Context, form *app.PostForm, isEdit bool, errs map[string]string) (interface{}, *util.HTTPError) {
	groups, err := pr.groups.Groups(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	title := "New post"
	if isEdit {
		title = "Edit post"
	}
	return gin.H{
		"title":  title,
		"viewer": middleware.GetUserMaybe(c),
		"form":   form,
		"groups": groups,
		"isEdit": isEdit,
		"errors": errs,
	}, nil
}

// bindPostForm reads the multipart post form and uploads the image, if any.
// Field errors found here are returned before the form reaches the app layer.
func (pr *postRoutes) bindPostForm(c *gin.Context) (*app.PostForm, map[string]string, *util.HTTPError) {
	var req postFormReq
	if err := c.ShouldBind(&req); err != nil {
		return nil, nil, util.BuildFormBindHTTPErr(err)
	}
	form := &app.PostForm{Text: req.Text}
	if group := strings.TrimSpace(req.Group); group != "" {
		groupId, err := strconv.ParseInt(group, 10, 64)
		if err != nil {
			return form, map[string]string{app.FieldGroup: "Select a valid group"}, nil
		}
		form.GroupId = &groupId
	}

	fileHeader, err := c.FormFile(app.FieldImage)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return form, nil, nil
	}
	if err != nil {
		return nil, nil, util.BuildFormBindHTTPErr(err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, util.BuildFormBindHTTPErr(err)
	}
	defer file.Close()

	blobName, err := pr.attachments.Upload(c, fileHeader.Header.Get("Content-Type"), file)
	if errors.Is(err, services.ErrUnsupportedImage) {
		return form, map[string]string{app.FieldImage: "Upload a valid image"}, nil
	}
	if err != nil {
		return nil, nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "could not store the image",
			Cause:   fmt.Errorf("upload %v: %w", fileHeader.Filename, err),
		}
	}
	zap.L().Debug("stored post image", zap.String("blob", blobName), zap.Int64("size", fileHeader.Size))
	form.Image = blobName
	return form, nil, nil
}
