package planetscale

import (
	appDb "github.com/navbryce/yatube/db"
	"github.com/upper/db/v4"
)

// wherePostsListQuery translates the filter part of the query. Callers handle
// query.MatchesNothing before reaching the store.
func wherePostsListQuery(selector db.Selector, query *appDb.PostsListQuery) db.Selector {
	var conds []db.LogicalExpr
	if query.GroupId != nil {
		conds = append(conds, db.Cond{"p.group_id": *query.GroupId})
	}
	if query.AuthorId != "" {
		conds = append(conds, db.Cond{"p.author_id": query.AuthorId})
	}
	if query.AuthorIds != nil {
		conds = append(conds, db.Cond{"p.author_id IN": query.AuthorIds})
	}
	if len(conds) == 0 {
		return selector
	}
	return selector.Where(db.And(conds...))
}

func pagePostsListQuery(selector db.Selector, opts *appDb.PostsListQueryOpts) db.Selector {
	if opts == nil {
		return selector
	}
	if opts.Limit > 0 {
		selector = selector.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		selector = selector.Offset(opts.Offset)
	}
	return selector
}
