package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// videoPathPrefixes are the youtube.com paths that carry the id as the next
// path segment.
var videoPathPrefixes = []string{"/embed/", "/v/", "/shorts/", "/live/"}

// ExtractYouTubeID returns the video id of a YouTube link. Watch, embed,
// shorts and youtu.be forms are recognized.
func ExtractYouTubeID(youtubeURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(youtubeURL))
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	host := strings.ToLower(u.Hostname())

	var id string
	switch {
	case host == "youtu.be" || strings.HasSuffix(host, ".youtu.be"):
		id = firstSegment(u.Path)
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if strings.HasPrefix(u.Path, "/watch") {
			id = u.Query().Get("v")
			break
		}
		for _, prefix := range videoPathPrefixes {
			if strings.HasPrefix(u.Path, prefix) {
				id = firstSegment(strings.TrimPrefix(u.Path, prefix))
				break
			}
		}
	default:
		return "", fmt.Errorf("not a YouTube URL: %s", youtubeURL)
	}

	if id == "" {
		return "", fmt.Errorf("no video ID in %s", youtubeURL)
	}
	return id, nil
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return p
}

// IsYouTubeURL reports whether urlStr points at youtube.com or youtu.be.
func IsYouTubeURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return strings.HasSuffix(host, "youtube.com") || strings.HasSuffix(host, "youtu.be")
}

// EmbedURL returns the embeddable player URL for a YouTube link, or "" when
// the link is not a recognizable YouTube video.
func EmbedURL(youtubeURL string) string {
	id, err := ExtractYouTubeID(youtubeURL)
	if err != nil {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}
