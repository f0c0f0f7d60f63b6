package app

import (
	"context"
	"fmt"

	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
)

type ListingKind string

const (
	ListingKindIndex   ListingKind = "INDEX"
	ListingKindGroup   ListingKind = "GROUP"
	ListingKindProfile ListingKind = "PROFILE"
	ListingKindFollow  ListingKind = "FOLLOW"
)

type ListingRequest struct {
	Kind ListingKind
	// Slug is read for ListingKindGroup, Username for ListingKindProfile
	Slug     string
	Username string
	Page     string
}

// Listing is one page of posts plus the metadata of its kind
type Listing struct {
	Kind       ListingKind        `json:"kind"`
	Page       *Page[*model.Post] `json:"page"`
	Group      *model.Group       `json:"group,omitempty"`
	Author     *model.User        `json:"author,omitempty"`
	PostsCount int                `json:"postsCount,omitempty"`
	// Following is set only for an authenticated viewer on someone else's profile
	Following *bool `json:"following,omitempty"`
}

type PostDetail struct {
	Post       *model.Post      `json:"post"`
	Comments   []*model.Comment `json:"comments"`
	PostsCount int              `json:"postsCount"`
}

type FeedAssembler struct {
	db       db.Database
	graph    *FollowGraph
	pageSize int
}

func NewFeedAssembler(database db.Database, graph *FollowGraph, pageSize int) *FeedAssembler {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &FeedAssembler{
		db:       database,
		graph:    graph,
		pageSize: pageSize,
	}
}

func (fa *FeedAssembler) Assemble(ctx context.Context, viewer *model.User, req *ListingRequest) (*Listing, error) {
	switch req.Kind {
	case ListingKindIndex:
		return fa.Index(ctx, req.Page)
	case ListingKindGroup:
		return fa.GroupPosts(ctx, req.Slug, req.Page)
	case ListingKindProfile:
		return fa.Profile(ctx, viewer, req.Username, req.Page)
	case ListingKindFollow:
		return fa.FollowIndex(ctx, viewer, req.Page)
	default:
		return nil, fmt.Errorf("unsupported listing kind %v", req.Kind)
	}
}

func (fa *FeedAssembler) Index(ctx context.Context, requestedPage string) (*Listing, error) {
	page, err := fa.paginate(ctx, &db.PostsListQuery{}, requestedPage)
	if err != nil {
		return nil, err
	}
	return &Listing{Kind: ListingKindIndex, Page: page}, nil
}

func (fa *FeedAssembler) GroupPosts(ctx context.Context, slug string, requestedPage string) (*Listing, error) {
	group, err := fa.db.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("%w: %v", ErrGroupNotFound, slug)
	}
	page, err := fa.paginate(ctx, &db.PostsListQuery{GroupId: &group.Id}, requestedPage)
	if err != nil {
		return nil, err
	}
	return &Listing{Kind: ListingKindGroup, Page: page, Group: group}, nil
}

func (fa *FeedAssembler) Profile(ctx context.Context, viewer *model.User, username string, requestedPage string) (*Listing, error) {
	author, err := fa.db.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("%w: %v", ErrUserNotFound, username)
	}
	page, err := fa.paginate(ctx, &db.PostsListQuery{AuthorId: author.Id}, requestedPage)
	if err != nil {
		return nil, err
	}
	listing := &Listing{
		Kind:       ListingKindProfile,
		Page:       page,
		Author:     author,
		PostsCount: page.Count,
	}
	if viewer.IsAuthenticated() && !viewer.Is(author) {
		following, err := fa.graph.IsFollowing(ctx, viewer, author)
		if err != nil {
			return nil, err
		}
		listing.Following = &following
	}
	return listing, nil
}

// FollowIndex lists the posts of the authors viewer follows. Routes only
// reach it for signed in viewers.
func (fa *FeedAssembler) FollowIndex(ctx context.Context, viewer *model.User, requestedPage string) (*Listing, error) {
	authorIds, err := fa.graph.FollowedAuthors(ctx, viewer)
	if err != nil {
		return nil, err
	}
	page, err := fa.paginate(ctx, &db.PostsListQuery{AuthorIds: authorIds}, requestedPage)
	if err != nil {
		return nil, err
	}
	return &Listing{Kind: ListingKindFollow, Page: page}, nil
}

func (fa *FeedAssembler) PostDetail(ctx context.Context, postId int64) (*PostDetail, error) {
	post, err := fa.getPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	comments, err := fa.db.GetCommentsForPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	postsCount, err := fa.db.CountPosts(ctx, &db.PostsListQuery{AuthorId: post.Author.Id})
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		Post:       post,
		Comments:   comments,
		PostsCount: postsCount,
	}, nil
}

func (fa *FeedAssembler) getPost(ctx context.Context, postId int64) (*model.Post, error) {
	post, err := fa.db.GetPostById(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: %v", ErrPostNotFound, postId)
	}
	return post, nil
}

// paginate counts first so the requested page can be clamped before the
// store is asked for the slice
func (fa *FeedAssembler) paginate(ctx context.Context, query *db.PostsListQuery, requestedPage string) (*Page[*model.Post], error) {
	count, err := fa.db.CountPosts(ctx, query)
	if err != nil {
		return nil, err
	}
	bounds := ResolvePage(count, fa.pageSize, requestedPage)
	query.PostsListQueryOpts = &db.PostsListQueryOpts{
		Limit:  bounds.Limit,
		Offset: bounds.Offset,
	}
	posts, err := fa.db.GetPosts(ctx, query)
	if err != nil {
		return nil, err
	}
	return NewPage(bounds, posts), nil
}
