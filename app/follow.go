package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
)

type followGraphDatabase interface {
	db.FollowDatabase
	db.UserDatabase
}

// FollowGraph maintains the directed follow edges between users. Follow and
// Unfollow are idempotent.
type FollowGraph struct {
	db followGraphDatabase
}

func NewFollowGraph(db followGraphDatabase) *FollowGraph {
	return &FollowGraph{db: db}
}

func (fg *FollowGraph) resolveTarget(ctx context.Context, username string) (*model.User, error) {
	target, err := fg.db.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %v", ErrUserNotFound, username)
	}
	return target, nil
}

// Follow creates the edge follower -> target if it is absent.
func (fg *FollowGraph) Follow(ctx context.Context, follower *model.User, targetUsername string) error {
	if !follower.IsAuthenticated() {
		return ErrLoginRequired
	}
	target, err := fg.resolveTarget(ctx, targetUsername)
	if err != nil {
		return err
	}
	if follower.Is(target) {
		return ErrSelfFollow
	}
	edge := &model.Follow{UserId: follower.Id, AuthorId: target.Id}
	exists, err := fg.db.FollowExists(ctx, edge)
	if err != nil || exists {
		return err
	}
	// a concurrent follow may win between the check and the insert
	if err := fg.db.CreateFollow(ctx, edge); err != nil && !errors.Is(err, db.ErrDuplicate) {
		return err
	}
	return nil
}

// Unfollow removes the edge follower -> target if it is present.
func (fg *FollowGraph) Unfollow(ctx context.Context, follower *model.User, targetUsername string) error {
	if !follower.IsAuthenticated() {
		return ErrLoginRequired
	}
	target, err := fg.resolveTarget(ctx, targetUsername)
	if err != nil {
		return err
	}
	edge := &model.Follow{UserId: follower.Id, AuthorId: target.Id}
	exists, err := fg.db.FollowExists(ctx, edge)
	if err != nil || !exists {
		return err
	}
	return fg.db.DeleteFollow(ctx, edge)
}

func (fg *FollowGraph) IsFollowing(ctx context.Context, follower *model.User, target *model.User) (bool, error) {
	if !follower.IsAuthenticated() || target == nil {
		return false, nil
	}
	return fg.db.FollowExists(ctx, &model.Follow{UserId: follower.Id, AuthorId: target.Id})
}

// FollowedAuthors returns the ids of every author follower follows. The
// result is never nil so it can be used as a db.PostsListQuery filter.
func (fg *FollowGraph) FollowedAuthors(ctx context.Context, follower *model.User) ([]string, error) {
	if !follower.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	follows, err := fg.db.GetFollowsForUser(ctx, follower.Id)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(follows))
	for i, follow := range follows {
		ids[i] = follow.AuthorId
	}
	return ids, nil
}
