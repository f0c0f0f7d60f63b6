package planetscale

import (
	"context"
	"database/sql"
	"time"

	db2 "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/dao"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, post *db2.CreatePost) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("post").
		Columns("author_id", "text", "group_id", "image").
		Values(post.AuthorId, post.Text, dao.NullInt64From(post.GroupId), post.Image).
		ExecContext(ctx)
	if err != nil {
		return 0, db2.NormalizeErr(err)
	}
	return res.LastInsertId()
}

func (pdb *PostDB) UpdatePost(ctx context.Context, id int64, post *db2.UpdatePost) error {
	_, err := pdb.sess.SQL().
		Update("post").
		Set("text", post.Text, "group_id", dao.NullInt64From(post.GroupId), "image", post.Image).
		Where("id = ?", id).
		ExecContext(ctx)
	return db2.NormalizeErr(err)
}

// DeletePost is the admin removal. Comments go with the post (ON DELETE CASCADE).
func (pdb *PostDB) DeletePost(ctx context.Context, id int64) error {
	_, err := pdb.sess.SQL().
		DeleteFrom("post").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

type flattenedAuthor struct {
	AuthorId          string `db:"author_id"`
	AuthorUsername    string `db:"username"`
	AuthorDisplayName string `db:"display_name"`
}

type flattenedPost struct {
	flattenedAuthor  `db:",inline"`
	Id               int64          `db:"id"`
	Text             string         `db:"text"`
	Image            string         `db:"image"`
	GroupId          dao.NullInt64  `db:"group_id"`
	GroupSlug        sql.NullString `db:"group_slug"`
	GroupTitle       sql.NullString `db:"group_title"`
	GroupDescription sql.NullString `db:"group_description"`
	CreatedAt        time.Time      `db:"created_at"`
}

var authorColumns = []interface{}{
	"person.username",
	"person.display_name",
}

var postColumns = append([]interface{}{
	"p.id",
	"p.text",
	"p.image",
	"p.author_id",
	"p.group_id",
	"p.created_at",
	"g.slug AS group_slug",
	"g.title AS group_title",
	"g.description AS group_description",
}, authorColumns...)

func (pdb *PostDB) selectPosts() db.Selector {
	return pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		LeftJoin("post_group AS g").On("p.group_id = g.id")
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.selectPosts().
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildPostFromFlattened(&post), nil
}

func (pdb *PostDB) GetPosts(ctx context.Context, query *db2.PostsListQuery) ([]*model.Post, error) {
	if query.MatchesNothing() {
		return []*model.Post{}, nil
	}
	selector := wherePostsListQuery(pdb.selectPosts(), query).
		OrderBy("p.created_at DESC", "p.id DESC")
	var flattenedPosts []flattenedPost
	if err := pagePostsListQuery(selector, query.PostsListQueryOpts).
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(flattenedPosts))
	for i := range flattenedPosts {
		posts[i] = buildPostFromFlattened(&flattenedPosts[i])
	}
	return posts, nil
}

func (pdb *PostDB) CountPosts(ctx context.Context, query *db2.PostsListQuery) (int, error) {
	if query.MatchesNothing() {
		return 0, nil
	}
	var row struct {
		Count int `db:"count"`
	}
	if err := wherePostsListQuery(
		pdb.sess.SQL().
			Select(db.Raw("COUNT(*) AS count")).
			From("post AS p"), query).
		IteratorContext(ctx).
		One(&row); err != nil {
		return 0, err
	}
	return row.Count, nil
}

func buildAuthorFromFlattened(author *flattenedAuthor) *model.User {
	return &model.User{
		Id:          author.AuthorId,
		Username:    author.AuthorUsername,
		DisplayName: author.AuthorDisplayName,
		Avatar:      util.Avatar(author.AuthorId),
	}
}

func buildPostFromFlattened(post *flattenedPost) *model.Post {
	var group *model.Group
	if post.GroupId.Valid {
		group = &model.Group{
			Id:          post.GroupId.AsInt(),
			Slug:        post.GroupSlug.String,
			Title:       post.GroupTitle.String,
			Description: post.GroupDescription.String,
		}
	}
	return &model.Post{
		Id:        post.Id,
		Text:      post.Text,
		Author:    buildAuthorFromFlattened(&post.flattenedAuthor),
		Group:     group,
		Image:     post.Image,
		CreatedAt: post.CreatedAt,
	}
}

func (pdb *PostDB) CreateComment(ctx context.Context, req *db2.CreateComment) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("comment").
		Columns("post_id", "author_id", "text").
		Values(req.PostId, req.AuthorId, req.Text).
		ExecContext(ctx)
	if err != nil {
		return 0, db2.NormalizeErr(err)
	}
	return res.LastInsertId()
}

type flattenedComment struct {
	flattenedAuthor `db:",inline"`
	Id              int64     `db:"id"`
	PostId          int64     `db:"post_id"`
	Text            string    `db:"text"`
	CreatedAt       time.Time `db:"created_at"`
}

var commentColumns = append([]interface{}{
	"c.id",
	"c.post_id",
	"c.author_id",
	"c.text",
	"c.created_at",
}, authorColumns...)

// GetCommentsForPost returns every comment of the post, newest first
func (pdb *PostDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := pdb.sess.SQL().
		Select(commentColumns...).
		From("comment AS c").
		Join("person").On("c.author_id = person.firebase_id").
		Where("c.post_id = ?", postId).
		OrderBy("c.created_at DESC", "c.id DESC").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, len(flattenedComments))
	for i, flattened := range flattenedComments {
		comments[i] = &model.Comment{
			Id:        flattened.Id,
			PostId:    flattened.PostId,
			Author:    buildAuthorFromFlattened(&flattened.flattenedAuthor),
			Text:      flattened.Text,
			CreatedAt: flattened.CreatedAt,
		}
	}
	return comments, nil
}
