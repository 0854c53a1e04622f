// Package session keeps the signed-in user and their selected ministry in a
// signed cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "sacramusic_session"

	keyUser     = "uid"
	keyMinistry = "ministry_id"

	maxAge = 86400 * 30
)

var (
	// ErrNoUser means the request carries no signed-in user.
	ErrNoUser = errors.New("no user in session")

	// ErrNoMinistry means the user has not selected or joined a ministry yet.
	ErrNoMinistry = errors.New("no ministry in session")
)

// NewCookieStore returns the cookie store used by the server.
func NewCookieStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.MaxAge(maxAge)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// Provider reads and writes the session of a request.
type Provider struct {
	store sessions.Store
}

func NewProvider(store sessions.Store) *Provider {
	return &Provider{store: store}
}

// get returns the request's session. A cookie that fails to decode (a
// rotated secret, a tampered value) yields a fresh empty session.
func (p *Provider) get(r *http.Request) *sessions.Session {
	sess, _ := p.store.Get(r, CookieName)
	if sess == nil {
		sess = sessions.NewSession(p.store, CookieName)
	}
	if sess.Options == nil {
		sess.Options = &sessions.Options{Path: "/", MaxAge: maxAge, HttpOnly: true}
	}
	return sess
}

func stringValue(sess *sessions.Session, key string) string {
	v, _ := sess.Values[key].(string)
	return v
}

// CurrentUser returns the signed-in user id.
func (p *Provider) CurrentUser(r *http.Request) (string, error) {
	uid := stringValue(p.get(r), keyUser)
	if uid == "" {
		return "", ErrNoUser
	}
	return uid, nil
}

// CurrentMinistry returns the signed-in user and their selected ministry.
// It fails with ErrNoUser or ErrNoMinistry while onboarding is unfinished.
func (p *Provider) CurrentMinistry(r *http.Request) (uid, ministryID string, err error) {
	sess := p.get(r)
	uid = stringValue(sess, keyUser)
	if uid == "" {
		return "", "", ErrNoUser
	}
	ministryID = stringValue(sess, keyMinistry)
	if ministryID == "" {
		return uid, "", ErrNoMinistry
	}
	return uid, ministryID, nil
}

// Set stores uid and ministryID. An empty ministryID clears the selection.
func (p *Provider) Set(w http.ResponseWriter, r *http.Request, uid, ministryID string) error {
	if uid == "" {
		return ErrNoUser
	}
	sess := p.get(r)
	sess.Values[keyUser] = uid
	if ministryID == "" {
		delete(sess.Values, keyMinistry)
	} else {
		sess.Values[keyMinistry] = ministryID
	}
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SetMinistry switches the signed-in user's ministry.
func (p *Provider) SetMinistry(w http.ResponseWriter, r *http.Request, ministryID string) error {
	uid, err := p.CurrentUser(r)
	if err != nil {
		return err
	}
	return p.Set(w, r, uid, ministryID)
}

// Clear expires the session cookie.
func (p *Provider) Clear(w http.ResponseWriter, r *http.Request) error {
	sess := p.get(r)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
