package web

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/spotlight/internal/console"
	"github.com/Zachkp/spotlight/internal/logging"
	"github.com/Zachkp/spotlight/internal/store"
)

// Analytics is the storage the web layer needs. *store.Store implements it.
type Analytics interface {
	RecordVisit(ctx context.Context, v store.Visit) error
	RecordViewEvent(ctx context.Context, e store.ViewEvent) error
	Stats(ctx context.Context, at time.Time) (*store.Stats, error)
	RecentVisitors(ctx context.Context, limit int) ([]store.Visit, error)
	Cleanup(ctx context.Context, cutoff time.Time) (int64, error)
	Ping(ctx context.Context) error
}

const writeTimeout = 5 * time.Second

// tracker queues analytics writes so request handlers and console transitions
// never wait on sqlite.
type tracker struct {
	db    Analytics
	queue chan func(context.Context) error
	salt  string
}

func newTracker(db Analytics, buffer int) *tracker {
	if buffer <= 0 {
		buffer = 1
	}
	return &tracker{
		db:    db,
		queue: make(chan func(context.Context) error, buffer),
		salt:  randomToken(),
	}
}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generate token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// hashIP hashes an address with the process salt. Consistent per IP for the
// lifetime of the process only.
func (t *tracker) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + t.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (t *tracker) enqueue(fn func(context.Context) error) {
	if t.db == nil {
		return
	}
	select {
	case t.queue <- fn:
	default:
		metricAnalyticsDropped.Inc()
		logging.L().Debug("analytics queue full, dropping event")
	}
}

func (t *tracker) visit(ip, userAgent, path string) {
	v := store.Visit{HashedIP: t.hashIP(ip), UserAgent: userAgent, Path: path, Timestamp: time.Now()}
	t.enqueue(func(ctx context.Context) error { return t.db.RecordVisit(ctx, v) })
}

func (t *tracker) viewChanged(sessionID string, tr console.Transition) {
	e := store.ViewEvent{SessionID: sessionID, From: string(tr.From), To: string(tr.To), Timestamp: time.Now()}
	t.enqueue(func(ctx context.Context) error { return t.db.RecordViewEvent(ctx, e) })
}

// run drains the queue until ctx is done, then flushes what is left. Writes
// never use ctx itself, so an event dequeued during shutdown is still stored.
func (t *tracker) run(ctx context.Context) error {
	for {
		select {
		case fn := <-t.queue:
			t.write(ctx, fn)
		case <-ctx.Done():
			for {
				select {
				case fn := <-t.queue:
					t.write(ctx, fn)
				default:
					return nil
				}
			}
		}
	}
}

func (t *tracker) write(ctx context.Context, fn func(context.Context) error) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := fn(wctx); err != nil {
		logging.L().Errorw("recording analytics", "error", err)
	}
}

// trackVisitors records page views, skipping assets, admin pages and
// visitors that send Do Not Track.
func (t *tracker) trackVisitors() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" ||
			strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/console") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") ||
			path == "/healthz" {
			c.Next()
			return
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		t.visit(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}
