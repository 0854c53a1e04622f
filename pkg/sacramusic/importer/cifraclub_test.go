package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>Cifra</title></head>
<body>
<div class="cifra">
  <h1 class="t1">Segura na Mão de Deus</h1>
  <h2 class="t3"><a href="/nelson-monteiro/">Nelson Monteiro</a></h2>
  <div id="cifra_tom">tom: <a class="js-modal-trigger" href="#">G</a></div>
  <div class="cifra_cnt g-fix cifra-mono">
<pre><b>G</b>        <b>D</b>
Se as águas do mar da vida

<b>C</b>          <b>G</b>
Quiserem te afogar</pre>
  </div>
</div>
</body></html>`

func TestIsCifraClubURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.cifraclub.com.br/nelson-monteiro/segura-na-mao-de-deus/", true},
		{"http://cifraclub.com.br/x/", true},
		{"  https://m.cifraclub.com.br/x/  ", true},
		{"https://cifraclub.com.br.evil.example/x", false},
		{"https://www.youtube.com/watch?v=abc", false},
		{"ftp://www.cifraclub.com.br/x", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCifraClubURL(tt.url), tt.url)
	}
}

func TestParseCifraClub(t *testing.T) {
	song, err := ParseCifraClub(strings.NewReader(samplePage), "https://www.cifraclub.com.br/x/")
	require.NoError(t, err)

	assert.Equal(t, "Segura na Mão de Deus (Nelson Monteiro)", song.Title)
	assert.Equal(t, "G", song.Key)
	assert.Equal(t, "G        D\nSe as águas do mar da vida\n\nC          G\nQuiserem te afogar", song.Chords)
	assert.Equal(t, "Se as águas do mar da vida\nQuiserem te afogar", song.Lyrics)
	assert.Equal(t, "https://www.cifraclub.com.br/x/", song.YouTubeLink)
	assert.Empty(t, song.ID)
}

func TestParseCifraClubTitleOnly(t *testing.T) {
	song, err := ParseCifraClub(strings.NewReader(`<h1 class="t1"> Aleluia </h1>`), "")
	require.NoError(t, err)
	assert.Equal(t, "Aleluia", song.Title)
	assert.Empty(t, song.Chords)
}

func TestParseCifraClubNothing(t *testing.T) {
	_, err := ParseCifraClub(strings.NewReader(`<html><body><p>404</p></body></html>`), "")
	assert.ErrorIs(t, err, ErrNothingExtracted)
}

// rewriteTransport sends every request to a test server regardless of host.
type rewriteTransport struct {
	target *url.URL
	next   http.RoundTripper
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return rt.next.RoundTrip(req)
}

func newTestClient(t *testing.T, h http.Handler) *http.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return &http.Client{Transport: rewriteTransport{target: target, next: http.DefaultTransport}}
}

func TestFetchCifraClub(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(samplePage))
	}))

	song, err := FetchCifraClub(context.Background(), client, "https://www.cifraclub.com.br/nelson-monteiro/segura/")
	require.NoError(t, err)
	assert.Equal(t, "/nelson-monteiro/segura/", gotPath)
	assert.Equal(t, "G", song.Key)
}

func TestFetchCifraClubErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := FetchCifraClub(context.Background(), client, "https://example.com/song")
	assert.ErrorIs(t, err, ErrNotCifraClub)

	_, err = FetchCifraClub(context.Background(), client, "https://www.cifraclub.com.br/missing/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FetchCifraClub(ctx, client, "https://www.cifraclub.com.br/x/")
	assert.Error(t, err)
}
