package source

import (
	"context"
	"time"
)

// Delayed wraps a Store and holds every page for a fixed latency, which
// makes the trailing loading row visible when browsing a local database.
type Delayed struct {
	Store   Store
	Latency time.Duration
}

// Page implements Store. The wait is abandoned when ctx is cancelled.
func (d Delayed) Page(ctx context.Context, q Query, offset, limit int) (Page, error) {
	if d.Latency > 0 {
		t := time.NewTimer(d.Latency)
		select {
		case <-ctx.Done():
			t.Stop()
			return Page{}, ctx.Err()
		case <-t.C:
		}
	}
	return d.Store.Page(ctx, q, offset, limit)
}
