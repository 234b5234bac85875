package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/helper-labs/helper-portal/internal/logging"
	"go.uber.org/zap"
)

// CookieStore persists cookies per host.
type CookieStore interface {
	SaveCookies(ctx context.Context, host string, cookies []*http.Cookie) error
	LoadCookies(ctx context.Context, host string) ([]*http.Cookie, error)
}

// PersistentJar is an http.CookieJar whose cookies with an expiry outlive the
// process, the way a browser keeps its token cookies between visits.
type PersistentJar struct {
	inner  *cookiejar.Jar
	store  CookieStore
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	saved map[string]map[string]*http.Cookie
}

var _ http.CookieJar = (*PersistentJar)(nil)

// NewPersistentJar builds a jar and preloads the cookies stored for rawURL's host.
func NewPersistentJar(ctx context.Context, store CookieStore, rawURL string, logger *zap.Logger) (*PersistentJar, error) {
	if store == nil {
		return nil, fmt.Errorf("cookie store is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	j := &PersistentJar{
		inner:  inner,
		store:  store,
		logger: logging.OrNop(logger),
		now:    time.Now,
		saved:  make(map[string]map[string]*http.Cookie),
	}
	cookies, err := store.LoadCookies(ctx, u.Host)
	if err != nil {
		return nil, fmt.Errorf("load cookies: %w", err)
	}
	live := make(map[string]*http.Cookie, len(cookies))
	now := j.now()
	for _, c := range cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		live[cookieKey(c)] = c
	}
	j.saved[u.Host] = live
	inner.SetCookies(u, values(live))
	return j, nil
}

// SetCookies implements http.CookieJar.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)

	j.mu.Lock()
	defer j.mu.Unlock()
	byKey := j.saved[u.Host]
	if byKey == nil {
		byKey = make(map[string]*http.Cookie)
		j.saved[u.Host] = byKey
	}
	now := j.now()
	for _, c := range cookies {
		stored := *c
		stored.Domain = strings.TrimPrefix(strings.ToLower(stored.Domain), ".")
		if stored.Path == "" || stored.Path[0] != '/' {
			stored.Path = defaultPath(u.Path)
		}
		key := cookieKey(&stored)
		if stored.MaxAge > 0 {
			stored.Expires = now.Add(time.Duration(stored.MaxAge) * time.Second)
			stored.MaxAge = 0
		}
		switch {
		case c.MaxAge < 0, !stored.Expires.IsZero() && stored.Expires.Before(now):
			delete(byKey, key)
		case stored.Expires.IsZero():
			// session cookie, lives only as long as the process
			delete(byKey, key)
		default:
			byKey[key] = &stored
		}
	}
	if err := j.store.SaveCookies(context.Background(), u.Host, values(byKey)); err != nil {
		j.logger.Warn("persist cookies failed", zap.String("host", u.Host), zap.Error(err))
	}
}

// Cookies implements http.CookieJar.
func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// cookieKey identifies a cookie the way cookiejar does: same name on another
// path or domain is a different cookie.
func cookieKey(c *http.Cookie) string {
	return c.Domain + ";" + c.Path + ";" + c.Name
}

// defaultPath is the cookie path implied by a request path (RFC 6265 5.1.4).
func defaultPath(p string) string {
	if p == "" || p[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(p, "/")
	if i == 0 {
		return "/"
	}
	return p[:i]
}

func values(byKey map[string]*http.Cookie) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, c)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Name != out[k].Name {
			return out[i].Name < out[k].Name
		}
		if out[i].Path != out[k].Path {
			return out[i].Path < out[k].Path
		}
		return out[i].Domain < out[k].Domain
	})
	return out
}
