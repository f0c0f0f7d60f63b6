package controllers

import (
	"context"
	"testing"

	"github.com/navbryce/yatube/db/memory"
	"github.com/navbryce/yatube/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupControllerServesCatalog(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := memory.New(nil)
	_, err := store.CreateGroup(ctx, &model.Group{Slug: "dogs", Title: "Dogs"})
	require.NoError(t, err)
	_, err = store.CreateGroup(ctx, &model.Group{Slug: "cats", Title: "Cats"})
	require.NoError(t, err)

	controller, err := NewGroupController(ctx, store, 0)
	require.NoError(t, err)

	groups, err := controller.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cats", groups[0].Title)
	assert.Equal(t, "Dogs", groups[1].Title)

	_, err = store.CreateGroup(ctx, &model.Group{Slug: "owls", Title: "Owls"})
	require.NoError(t, err)
	groups, err = controller.Groups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	require.NoError(t, controller.Refresh(ctx))
	groups, err = controller.Groups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 3)
}
