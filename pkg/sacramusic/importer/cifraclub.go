// Package importer pulls songs from third-party chord sites.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/himanishpuri/SacraMusic/pkg/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const cifraClubHost = "cifraclub.com.br"

// maxPageSize caps how much of a page is read.
const maxPageSize = 4 << 20

var (
	ErrNotCifraClub     = errors.New("not a cifraclub.com.br link")
	ErrNothingExtracted = errors.New("could not extract song data; the page layout may have changed")
)

// IsCifraClubURL reports whether raw is an http(s) link to CifraClub.
func IsCifraClubURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == cifraClubHost || strings.HasSuffix(host, "."+cifraClubHost)
}

// FetchCifraClub downloads a CifraClub song page and extracts a draft song.
// The returned song has no ID. A nil client uses http.DefaultClient.
func FetchCifraClub(ctx context.Context, client *http.Client, pageURL string) (*models.Song, error) {
	pageURL = strings.TrimSpace(pageURL)
	if !IsCifraClubURL(pageURL) {
		return nil, ErrNotCifraClub
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "SacraMusic/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", pageURL, resp.Status)
	}

	return ParseCifraClub(io.LimitReader(resp.Body, maxPageSize), pageURL)
}

// ParseCifraClub extracts title, artist, key and chords from a CifraClub
// page. Lyrics are the chords text with the chord markup removed and blank
// lines dropped.
func ParseCifraClub(r io.Reader, sourceURL string) (*models.Song, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	songName := strings.TrimSpace(textOf(findFirst(doc, byTagClass(atom.H1, "t1")), false))
	artist := strings.TrimSpace(textOf(findFirst(doc, byTagClass(atom.H2, "t3")), false))

	title := songName
	if songName != "" && artist != "" {
		title = fmt.Sprintf("%s (%s)", songName, artist)
	}

	var key string
	if tom := findFirst(doc, byID("cifra_tom")); tom != nil {
		key = strings.TrimSpace(textOf(findFirst(tom, byTag(atom.A)), false))
	}

	var chordsText, lyrics string
	if cnt := findFirst(doc, byClass("cifra_cnt")); cnt != nil {
		if pre := findFirst(cnt, byTag(atom.Pre)); pre != nil {
			chordsText = textOf(pre, false)
			lyrics = dropBlankLines(textOf(pre, true))
		}
	}

	if title == "" && chordsText == "" {
		return nil, ErrNothingExtracted
	}

	return &models.Song{
		Title:       title,
		Key:         key,
		Chords:      chordsText,
		Lyrics:      lyrics,
		YouTubeLink: sourceURL,
	}, nil
}

// ---- minimal DOM queries ----

type matcher func(*html.Node) bool

func byTag(a atom.Atom) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func byClass(class string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClass(n, class)
	}
}

func byTagClass(a atom.Atom, class string) matcher {
	return func(n *html.Node) bool {
		return byTag(a)(n) && hasClass(n, class)
	}
}

func byID(id string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findFirst returns the first descendant of root, in document order, that
// matches.
func findFirst(root *html.Node, match matcher) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// textOf concatenates the text nodes under n, optionally skipping <b>
// subtrees.
func textOf(n *html.Node, skipBold bool) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if skipBold && n.Type == html.ElementNode && n.DataAtom == atom.B {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func dropBlankLines(s string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
