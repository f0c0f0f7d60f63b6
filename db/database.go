package db

import (
	"context"

	"github.com/navbryce/yatube/model"
)

type Database interface {
	PostDatabase
	GroupDatabase
	UserDatabase
	FollowDatabase
	Ping(ctx context.Context) error
	Close() error
}

type CreatePost struct {
	AuthorId string
	Text     string
	GroupId  *int64
	Image    string
}

type UpdatePost struct {
	Text    string
	GroupId *int64
	Image   string
}

type CreateComment struct {
	PostId   int64
	AuthorId string
	Text     string
}

// PostsListQuery selects posts ordered by created_at DESC, id DESC.
// Zero value filters select everything.
type PostsListQuery struct {
	GroupId  *int64
	AuthorId string
	// AuthorIds restricts the authors when non-nil. An empty non-nil slice matches nothing.
	AuthorIds []string
	*PostsListQueryOpts
}

type PostsListQueryOpts struct {
	Limit  int
	Offset int
}

// MatchesNothing is true when the query can be answered without the store
func (q *PostsListQuery) MatchesNothing() bool {
	return q.AuthorIds != nil && len(q.AuthorIds) == 0
}

// Matches evaluates the filter part of the query against a single post
func (q *PostsListQuery) Matches(post *model.Post) bool {
	if q.GroupId != nil && (post.Group == nil || post.Group.Id != *q.GroupId) {
		return false
	}
	if q.AuthorId != "" && post.Author.Id != q.AuthorId {
		return false
	}
	if q.AuthorIds != nil {
		for _, id := range q.AuthorIds {
			if post.Author.Id == id {
				return true
			}
		}
		return false
	}
	return true
}

// Get methods return (nil, nil) when the record does not exist.
type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	UpdatePost(ctx context.Context, id int64, req *UpdatePost) error
	DeletePost(ctx context.Context, id int64) error
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetPosts(ctx context.Context, query *PostsListQuery) ([]*model.Post, error)
	CountPosts(ctx context.Context, query *PostsListQuery) (int, error)
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error)
}

type GroupDatabase interface {
	CreateGroup(ctx context.Context, group *model.Group) (groupId int64, err error)
	GetGroupById(ctx context.Context, id int64) (*model.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error)
	GetGroups(ctx context.Context) ([]*model.Group, error)
}

type UserDatabase interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type FollowDatabase interface {
	// CreateFollow returns ErrDuplicate if the edge exists
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, follow *model.Follow) error
	FollowExists(ctx context.Context, follow *model.Follow) (bool, error)
	GetFollowsForUser(ctx context.Context, userId string) ([]*model.Follow, error)
}
