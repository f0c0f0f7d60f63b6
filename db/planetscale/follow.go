package planetscale

import (
	"context"

	db2 "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/upper/db/v4"
)

type FollowDB struct {
	sess db.Session
}

func getFollowDB(sess db.Session) *FollowDB {
	return &FollowDB{sess}
}

func (fdb *FollowDB) CreateFollow(ctx context.Context, follow *model.Follow) error {
	_, err := fdb.sess.WithContext(ctx).
		Collection("follow").
		Insert(follow)
	return db2.NormalizeErr(err)
}

func (fdb *FollowDB) DeleteFollow(ctx context.Context, follow *model.Follow) error {
	return fdb.sess.WithContext(ctx).
		Collection("follow").
		Find("user_id = ? AND author_id = ?", follow.UserId, follow.AuthorId).
		Delete()
}

func (fdb *FollowDB) FollowExists(ctx context.Context, follow *model.Follow) (bool, error) {
	return fdb.sess.WithContext(ctx).
		Collection("follow").
		Find("user_id = ? AND author_id = ?", follow.UserId, follow.AuthorId).
		Exists()
}

func (fdb *FollowDB) GetFollowsForUser(ctx context.Context, userId string) ([]*model.Follow, error) {
	var follows []*model.Follow
	err := fdb.sess.WithContext(ctx).
		Collection("follow").
		Find("user_id = ?", userId).
		All(&follows)
	return follows, err
}
