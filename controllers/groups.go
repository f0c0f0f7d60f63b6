package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"go.uber.org/zap"
)

const GroupsUpdateInterval = time.Minute * 5

type groupCatalog struct {
	groups    []*model.Group
	createdAt time.Time
}

// GroupController keeps the group choices of the post form in memory.
// Groups are created out of band, so the catalog is reloaded on a ticker.
type GroupController struct {
	db db.GroupDatabase

	cachedLock sync.Mutex
	cached     *groupCatalog
}

// NewGroupController loads the catalog once and refreshes it every interval
// until ctx is done
func NewGroupController(ctx context.Context, db db.GroupDatabase, interval time.Duration) (*GroupController, error) {
	controller := &GroupController{
		db: db,
	}
	if err := controller.updateCached(ctx); err != nil {
		return nil, err
	}
	if interval <= 0 {
		return controller, nil
	}

	updateTicker := time.NewTicker(interval)
	go func() {
		defer updateTicker.Stop()
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("recovered while updating the group catalog", zap.Any("panic", r))
			}
		}()
		for {
			select {
			case <-updateTicker.C:
				controller.attemptToUpdateCached(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
	return controller, nil
}

// Groups returns the cached catalog ordered by title
func (gc *GroupController) Groups(ctx context.Context) ([]*model.Group, error) {
	gc.cachedLock.Lock()
	defer gc.cachedLock.Unlock()
	return gc.cached.groups, nil
}

// Refresh reloads the catalog now
func (gc *GroupController) Refresh(ctx context.Context) error {
	return gc.updateCached(ctx)
}

func (gc *GroupController) attemptToUpdateCached(ctx context.Context) {
	if err := gc.updateCached(ctx); err != nil {
		zap.L().Error("could not update the group catalog", zap.Error(err))
	}
}

func (gc *GroupController) updateCached(ctx context.Context) error {
	groups, err := gc.db.GetGroups(ctx)
	if err != nil {
		return err
	}
	catalog := &groupCatalog{groups: groups, createdAt: time.Now()}

	// start of cachedLock
	gc.cachedLock.Lock()
	defer gc.cachedLock.Unlock()
	if gc.cached == nil || !catalog.createdAt.Before(gc.cached.createdAt) {
		gc.cached = catalog
	}
	// end of cachedLock
	return nil
}
