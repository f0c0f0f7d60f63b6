// Package memory is a process local implementation of db.Database. It backs
// STORE=memory and the package tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
)

type postRow struct {
	id        int64
	authorId  string
	text      string
	groupId   *int64
	image     string
	createdAt time.Time
}

type commentRow struct {
	id        int64
	postId    int64
	authorId  string
	text      string
	createdAt time.Time
}

type DB struct {
	now func() time.Time

	lock          sync.RWMutex
	users         map[string]*model.User
	groups        map[int64]*model.Group
	posts         map[int64]*postRow
	comments      []*commentRow
	follows       map[model.Follow]struct{}
	lastGroupId   int64
	lastPostId    int64
	lastCommentId int64
}

// New creates an empty store. now stamps created_at and defaults to time.Now.
func New(now func() time.Time) *DB {
	if now == nil {
		now = time.Now
	}
	return &DB{
		now:     now,
		users:   make(map[string]*model.User),
		groups:  make(map[int64]*model.Group),
		posts:   make(map[int64]*postRow),
		follows: make(map[model.Follow]struct{}),
	}
}

var _ appDb.Database = (*DB)(nil)

func (mdb *DB) Ping(ctx context.Context) error {
	return nil
}

func (mdb *DB) Close() error {
	return nil
}

func (mdb *DB) CreateUser(ctx context.Context, user *model.User) error {
	mdb.lock.Lock()
	defer mdb.lock.Unlock()
	if _, ok := mdb.users[user.Id]; ok {
		return appDb.ErrDuplicate
	}
	for _, existing := range mdb.users {
		if existing.Username == user.Username {
			return appDb.ErrDuplicate
		}
	}
	stored := *user
	if stored.Avatar == "" {
		stored.Avatar = util.Avatar(stored.Id)
	}
	mdb.users[user.Id] = &stored
	return nil
}

func (mdb *DB) GetUser(ctx context.Context, id string) (*model.User, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	return mdb.userCopy(id), nil
}

func (mdb *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	for id, user := range mdb.users {
		if user.Username == username {
			return mdb.userCopy(id), nil
		}
	}
	return nil, nil
}

func (mdb *DB) userCopy(id string) *model.User {
	user, ok := mdb.users[id]
	if !ok {
		return nil
	}
	cp := *user
	return &cp
}

func (mdb *DB) CreateGroup(ctx context.Context, group *model.Group) (int64, error) {
	mdb.lock.Lock()
	defer mdb.lock.Unlock()
	for _, existing := range mdb.groups {
		if existing.Slug == group.Slug {
			return 0, appDb.ErrDuplicate
		}
	}
	mdb.lastGroupId++
	stored := *group
	stored.Id = mdb.lastGroupId
	mdb.groups[stored.Id] = &stored
	return stored.Id, nil
}

// checkUser and checkGroup stand in for the foreign keys of the MySQL schema
func (mdb *DB) checkUser(id string) error {
	if _, ok := mdb.users[id]; !ok {
		return fmt.Errorf("%w: user %q", appDb.ErrUnknownReference, id)
	}
	return nil
}

func (mdb *DB) checkGroup(id *int64) error {
	if id == nil {
		return nil
	}
	if _, ok := mdb.groups[*id]; !ok {
		return fmt.Errorf("%w: group %v", appDb.ErrUnknownReference, *id)
	}
	return nil
}

func (mdb *DB) GetGroupById(ctx context.Context, id int64) (*model.Group, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	return mdb.groupCopy(id), nil
}

func (mdb *DB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	for id, group := range mdb.groups {
		if group.Slug == slug {
			return mdb.groupCopy(id), nil
		}
	}
	return nil, nil
}

func (mdb *DB) GetGroups(ctx context.Context) ([]*model.Group, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	groups := make([]*model.Group, 0, len(mdb.groups))
	for id := range mdb.groups {
		groups = append(groups, mdb.groupCopy(id))
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Title < groups[j].Title
	})
	return groups, nil
}

func (mdb *DB) groupCopy(id int64) *model.Group {
	group, ok := mdb.groups[id]
	if !ok {
		return nil
	}
	cp := *group
	return &cp
}

func (mdb *DB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	mdb.lock.Lock()
	defer mdb.lock.Unlock()
	if err := mdb.checkUser(req.AuthorId); err != nil {
		return 0, err
	}
	if err := mdb.checkGroup(req.GroupId); err != nil {
		return 0, err
	}
	mdb.lastPostId++
	mdb.posts[mdb.lastPostId] = &postRow{
		id:        mdb.lastPostId,
		authorId:  req.AuthorId,
		text:      req.Text,
		groupId:   copyId(req.GroupId),
		image:     req.Image,
		createdAt: mdb.now(),
	}
	return mdb.lastPostId, nil
}

func (mdb *DB) UpdatePost(ctx context.Context, id int64, req *appDb.UpdatePost) error {
	mdb.lock.Lock()
	defer mdb.lock.Unlock()
	row, ok := mdb.posts[id]
	if !ok {
		return nil
	}
	if err := mdb.checkGroup(req.GroupId); err != nil {
		return err
	}
	row.text = req.Text
	row.groupId = copyId(req.GroupId)
	row.image = req.Image
	return nil
}

func (mdb *DB) DeletePost(ctx context.Context, id int64) error {
	mdb.lock.Lock()
	defer mdb.lock.Unlock()
	delete(mdb.posts, id)
	kept := mdb.comments[:0]
	for _, comment := range mdb.comments {
		if comment.postId != id {
			kept = append(kept, comment)
		}
	}
	mdb.comments = kept
	return nil
}

func (mdb *DB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	row, ok := mdb.posts[id]
	if !ok {
		return nil, nil
	}
	return mdb.buildPost(row), nil
}

func (mdb *DB) GetPosts(ctx context.Context, query *appDb.PostsListQuery) ([]*model.Post, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	posts := mdb.matchingPosts(query)
	if opts := query.PostsListQueryOpts; opts != nil {
		start := min(opts.Offset, len(posts))
		end := len(posts)
		if opts.Limit > 0 {
			end = min(start+opts.Limit, len(posts))
		}
		posts = posts[start:end]
	}
	return posts, nil
}

func (mdb *DB) CountPosts(ctx context.Context, query *appDb.PostsListQuery) (int, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	return len(mdb.matchingPosts(query)), nil
}

// matchingPosts assumes the read lock is held
func (mdb *DB) matchingPosts(query *appDb.PostsListQuery) []*model.Post {
	posts := []*model.Post{}
	if query.MatchesNothing() {
		return posts
	}
	for _, row := range mdb.posts {
		post := mdb.buildPost(row)
		if query.Matches(post) {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].Id > posts[j].Id
	})
	return posts
}

func (mdb *DB) buildPost(row *postRow) *model.Post {
	post := &model.Post{
		Id:        row.id,
		Text:      row.text,
		Author:    mdb.userCopy(row.authorId),
		Image:     row.image,
		CreatedAt: row.createdAt,
	}
	if row.groupId != nil {
		post.Group = mdb.groupCopy(*row.groupId)
	}
	return post
}

func (mdb *DB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	mdb.lock.Lock()
	defer mdb.lock.Unlock()
	if _, ok := mdb.posts[req.PostId]; !ok {
		return 0, fmt.Errorf("%w: post %v", appDb.ErrUnknownReference, req.PostId)
	}
	if err := mdb.checkUser(req.AuthorId); err != nil {
		return 0, err
	}
	mdb.lastCommentId++
	mdb.comments = append(mdb.comments, &commentRow{
		id:        mdb.lastCommentId,
		postId:    req.PostId,
		authorId:  req.AuthorId,
		text:      req.Text,
		createdAt: mdb.now(),
	})
	return mdb.lastCommentId, nil
}

// GetCommentsForPost returns every comment of the post, newest first
func (mdb *DB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	comments := []*model.Comment{}
	for i := len(mdb.comments) - 1; i >= 0; i-- {
		row := mdb.comments[i]
		if row.postId != postId {
			continue
		}
		comments = append(comments, &model.Comment{
			Id:        row.id,
			PostId:    row.postId,
			Author:    mdb.userCopy(row.authorId),
			Text:      row.text,
			CreatedAt: row.createdAt,
		})
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (mdb *DB) CreateFollow(ctx context.Context, follow *model.Follow) error {
	mdb.lock.Lock()
	defer mdb.lock.Unlock()
	if err := mdb.checkUser(follow.UserId); err != nil {
		return err
	}
	if err := mdb.checkUser(follow.AuthorId); err != nil {
		return err
	}
	if _, ok := mdb.follows[*follow]; ok {
		return appDb.ErrDuplicate
	}
	mdb.follows[*follow] = struct{}{}
	return nil
}

func (mdb *DB) DeleteFollow(ctx context.Context, follow *model.Follow) error {
	mdb.lock.Lock()
	defer mdb.lock.Unlock()
	delete(mdb.follows, *follow)
	return nil
}

func (mdb *DB) FollowExists(ctx context.Context, follow *model.Follow) (bool, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	_, ok := mdb.follows[*follow]
	return ok, nil
}

func (mdb *DB) GetFollowsForUser(ctx context.Context, userId string) ([]*model.Follow, error) {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	follows := []*model.Follow{}
	for follow := range mdb.follows {
		if follow.UserId == userId {
			cp := follow
			follows = append(follows, &cp)
		}
	}
	sort.Slice(follows, func(i, j int) bool {
		return follows[i].AuthorId < follows[j].AuthorId
	})
	return follows, nil
}

// FollowCount is the number of stored edges
func (mdb *DB) FollowCount() int {
	mdb.lock.RLock()
	defer mdb.lock.RUnlock()
	return len(mdb.follows)
}

func copyId(id *int64) *int64 {
	if id == nil {
		return nil
	}
	val := *id
	return &val
}
