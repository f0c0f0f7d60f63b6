package app

import (
	"context"
	"fmt"

	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/routepath"
	"github.com/navbryce/yatube/util"
)

const (
	FieldText  = "text"
	FieldGroup = "group"
	FieldImage = "image"
)

type PostForm struct {
	Text    string
	GroupId *int64
	// Image is a blob name in the uploads bucket. Empty keeps the current
	// image when editing.
	Image string
}

type Decision int

const (
	DecisionAllowed Decision = iota
	DecisionDenied
)

// Outcome tells the boundary where to send the viewer. A Denied outcome is
// not an error: the viewer is redirected without being told why.
type Outcome struct {
	Decision       Decision
	RedirectTarget string
	Post           *model.Post
}

func (o *Outcome) Allowed() bool {
	return o.Decision == DecisionAllowed
}

func (fa *FeedAssembler) CreatePost(ctx context.Context, viewer *model.User, form *PostForm) (*Outcome, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	text, err := fa.cleanPostForm(ctx, form)
	if err != nil {
		return nil, err
	}
	postId, err := fa.db.CreatePost(ctx, &db.CreatePost{
		AuthorId: viewer.Id,
		Text:     text,
		GroupId:  form.GroupId,
		Image:    form.Image,
	})
	if err != nil {
		return nil, err
	}
	post, err := fa.getPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Decision:       DecisionAllowed,
		RedirectTarget: routepath.Profile(viewer.Username),
		Post:           post,
	}, nil
}

// AuthorizeEdit decides whether viewer may open the edit form of the post
func (fa *FeedAssembler) AuthorizeEdit(ctx context.Context, viewer *model.User, postId int64) (*Outcome, error) {
	post, err := fa.getPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	outcome := &Outcome{
		Decision:       DecisionDenied,
		RedirectTarget: routepath.PostDetail(postId),
		Post:           post,
	}
	if post.IsAuthoredBy(viewer) {
		outcome.Decision = DecisionAllowed
	}
	return outcome, nil
}

func (fa *FeedAssembler) EditPost(ctx context.Context, viewer *model.User, postId int64, form *PostForm) (*Outcome, error) {
	outcome, err := fa.AuthorizeEdit(ctx, viewer, postId)
	if err != nil || !outcome.Allowed() {
		return outcome, err
	}
	text, err := fa.cleanPostForm(ctx, form)
	if err != nil {
		return nil, err
	}
	image := form.Image
	if image == "" {
		image = outcome.Post.Image
	}
	if err := fa.db.UpdatePost(ctx, postId, &db.UpdatePost{
		Text:    text,
		GroupId: form.GroupId,
		Image:   image,
	}); err != nil {
		return nil, err
	}
	if outcome.Post, err = fa.getPost(ctx, postId); err != nil {
		return nil, err
	}
	return outcome, nil
}

func (fa *FeedAssembler) AddComment(ctx context.Context, viewer *model.User, postId int64, text string) (*Outcome, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	post, err := fa.getPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	text = util.SanitizeText(text)
	if text == "" {
		return nil, &ValidationError{Field: FieldText, Message: "Enter the comment text"}
	}
	if _, err := fa.db.CreateComment(ctx, &db.CreateComment{
		PostId:   postId,
		AuthorId: viewer.Id,
		Text:     text,
	}); err != nil {
		return nil, err
	}
	return &Outcome{
		Decision:       DecisionAllowed,
		RedirectTarget: routepath.PostDetail(postId),
		Post:           post,
	}, nil
}

func (fa *FeedAssembler) cleanPostForm(ctx context.Context, form *PostForm) (string, error) {
	text := util.SanitizeText(form.Text)
	if text == "" {
		return "", &ValidationError{Field: FieldText, Message: "Enter the post text"}
	}
	if form.GroupId != nil {
		group, err := fa.db.GetGroupById(ctx, *form.GroupId)
		if err != nil {
			return "", err
		}
		if group == nil {
			return "", &ValidationError{
				Field:   FieldGroup,
				Message: "Select a valid group",
				Err:     fmt.Errorf("%w: %v", ErrGroupNotFound, *form.GroupId),
			}
		}
	}
	return text, nil
}
