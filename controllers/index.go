package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/navbryce/yatube/app"
)

const DefaultIndexCacheTTL = 3 * time.Second

type cachedListing struct {
	listing   *app.Listing
	expiresAt time.Time
}

func (cl *cachedListing) isFresh(now time.Time) bool {
	return now.Before(cl.expiresAt)
}

// IndexController serves the global listing from a fixed window cache. A
// cached page is served verbatim to every viewer until it expires, whatever
// was written in between. Slots are keyed by the requested page number.
type IndexController struct {
	feed *app.FeedAssembler
	ttl  time.Duration
	now  func() time.Time

	cachedLock sync.Mutex
	cached     map[int]*cachedListing
}

func NewIndexController(feed *app.FeedAssembler, ttl time.Duration, now func() time.Time) *IndexController {
	if now == nil {
		now = time.Now
	}
	return &IndexController{
		feed:   feed,
		ttl:    ttl,
		now:    now,
		cached: make(map[int]*cachedListing),
	}
}

func (ic *IndexController) GetIndex(ctx context.Context, requestedPage string) (*app.Listing, error) {
	key := app.ParsePageNumber(requestedPage)
	if listing := ic.getCached(key); listing != nil {
		return listing, nil
	}

	listing, err := ic.feed.Index(ctx, requestedPage)
	if err != nil {
		return nil, err
	}
	ic.setCached(key, listing)
	return listing, nil
}

func (ic *IndexController) getCached(key int) *app.Listing {
	ic.cachedLock.Lock()
	defer ic.cachedLock.Unlock()
	cached, ok := ic.cached[key]
	if !ok || !cached.isFresh(ic.now()) {
		return nil
	}
	return cached.listing
}

func (ic *IndexController) setCached(key int, listing *app.Listing) {
	now := ic.now()

	// start of cachedLock
	ic.cachedLock.Lock()
	defer ic.cachedLock.Unlock()
	for k, cached := range ic.cached {
		if !cached.isFresh(now) {
			delete(ic.cached, k)
		}
	}
	ic.cached[key] = &cachedListing{
		listing:   listing,
		expiresAt: now.Add(ic.ttl),
	}
	// end of cachedLock
}
