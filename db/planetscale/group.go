package planetscale

import (
	"context"

	db2 "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/upper/db/v4"
)

type GroupDB struct {
	sess db.Session
}

func getGroupDB(sess db.Session) *GroupDB {
	return &GroupDB{sess}
}

func (gdb *GroupDB) CreateGroup(ctx context.Context, group *model.Group) (int64, error) {
	res, err := gdb.sess.SQL().
		InsertInto("post_group").
		Columns("slug", "title", "description").
		Values(group.Slug, group.Title, group.Description).
		ExecContext(ctx)
	if err != nil {
		return 0, db2.NormalizeErr(err)
	}
	return res.LastInsertId()
}

func (gdb *GroupDB) GetGroupById(ctx context.Context, id int64) (*model.Group, error) {
	return gdb.getGroupWhere(ctx, "id = ?", id)
}

func (gdb *GroupDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return gdb.getGroupWhere(ctx, "slug = ?", slug)
}

func (gdb *GroupDB) getGroupWhere(ctx context.Context, where ...interface{}) (*model.Group, error) {
	var group model.Group
	if err := gdb.sess.SQL().
		Select("id", "slug", "title", "description").
		From("post_group").
		Where(where...).
		IteratorContext(ctx).
		One(&group); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// GetGroups gets all groups ordered by title
func (gdb *GroupDB) GetGroups(ctx context.Context) ([]*model.Group, error) {
	var groups []*model.Group
	if err := gdb.sess.SQL().
		Select("id", "slug", "title", "description").
		From("post_group").
		OrderBy("title").
		IteratorContext(ctx).
		All(&groups); err != nil {
		return nil, err
	}
	return groups, nil
}
