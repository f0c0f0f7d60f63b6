package planetscale

import (
	"context"

	db2 "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
	"github.com/upper/db/v4"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	_, err := udb.sess.WithContext(ctx).
		Collection("person").
		Insert(user)
	return db2.NormalizeErr(err)
}

func (udb *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	return udb.getUserWhere(ctx, "firebase_id = ?", id)
}

func (udb *UserDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return udb.getUserWhere(ctx, "username = ?", username)
}

func (udb *UserDB) getUserWhere(ctx context.Context, where ...interface{}) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("firebase_id", "username", "display_name", "avatar").
		From("person").
		Where(where...).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	if user.Avatar == "" {
		user.Avatar = util.Avatar(user.Id)
	}
	return &user, nil
}
