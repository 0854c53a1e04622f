package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func newTestProvider() *Provider {
	return NewProvider(NewCookieStore([]byte(testSecret), false))
}

// roundTrip replays the cookies set on rec onto a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestEmptySession(t *testing.T) {
	p := newTestProvider()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := p.CurrentUser(req)
	assert.ErrorIs(t, err, ErrNoUser)

	_, _, err = p.CurrentMinistry(req)
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestSetAndRead(t *testing.T) {
	p := newTestProvider()

	rec := httptest.NewRecorder()
	require.NoError(t, p.Set(rec, httptest.NewRequest(http.MethodPost, "/", nil), "user-1", "min-1"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	uid, ministryID, err := p.CurrentMinistry(roundTrip(rec))
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
	assert.Equal(t, "min-1", ministryID)
}

func TestUserWithoutMinistry(t *testing.T) {
	p := newTestProvider()

	rec := httptest.NewRecorder()
	require.NoError(t, p.Set(rec, httptest.NewRequest(http.MethodPost, "/", nil), "user-1", ""))

	req := roundTrip(rec)
	uid, err := p.CurrentUser(req)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)

	uid, _, err = p.CurrentMinistry(req)
	assert.ErrorIs(t, err, ErrNoMinistry)
	assert.Equal(t, "user-1", uid)
}

func TestSetMinistry(t *testing.T) {
	p := newTestProvider()

	rec := httptest.NewRecorder()
	require.NoError(t, p.Set(rec, httptest.NewRequest(http.MethodPost, "/", nil), "user-1", ""))

	rec2 := httptest.NewRecorder()
	require.NoError(t, p.SetMinistry(rec2, roundTrip(rec), "min-2"))

	uid, ministryID, err := p.CurrentMinistry(roundTrip(rec2))
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
	assert.Equal(t, "min-2", ministryID)

	err = p.SetMinistry(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil), "min-2")
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestSetRequiresUser(t *testing.T) {
	p := newTestProvider()
	err := p.Set(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil), "", "min-1")
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestClear(t *testing.T) {
	p := newTestProvider()

	rec := httptest.NewRecorder()
	require.NoError(t, p.Set(rec, httptest.NewRequest(http.MethodPost, "/", nil), "user-1", "min-1"))

	rec2 := httptest.NewRecorder()
	require.NoError(t, p.Clear(rec2, roundTrip(rec)))

	cookies := rec2.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestTamperedCookie(t *testing.T) {
	p := newTestProvider()

	rec := httptest.NewRecorder()
	require.NoError(t, p.Set(rec, httptest.NewRequest(http.MethodPost, "/", nil), "user-1", "min-1"))

	other := NewProvider(NewCookieStore([]byte("another-secret-key-32-bytes-long"), false))
	_, err := other.CurrentUser(roundTrip(rec))
	assert.ErrorIs(t, err, ErrNoUser)
}
