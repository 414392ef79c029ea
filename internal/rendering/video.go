package rendering

import (
	"regexp"
	"strings"
)

var (
	youTubeIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)
	vimeoIDPattern   = regexp.MustCompile(`vimeo\.com/(\d+)`)
)

// Player iframe permissions.
const (
	YouTubeAllow = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"
	VimeoAllow   = "autoplay; fullscreen; picture-in-picture"
)

// YouTubeID extracts the 11-character video id from a YouTube watch, short, embed or /v/ URL.
func YouTubeID(src string) (string, bool) {
	m := youTubeIDPattern.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// VimeoID extracts the numeric Vimeo video id.
func VimeoID(src string) (string, bool) {
	m := vimeoIDPattern.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// EmbedURL returns the player URL and iframe permissions for a hosted video. ok is false
// for sources that are played with a native video element.
func EmbedURL(src string) (embed, allow string, ok bool) {
	switch {
	case strings.Contains(src, "youtube.com") || strings.Contains(src, "youtu.be"):
		if id, found := YouTubeID(src); found {
			return "https://www.youtube.com/embed/" + id, YouTubeAllow, true
		}
	case strings.Contains(src, "vimeo.com"):
		if id, found := VimeoID(src); found {
			return "https://player.vimeo.com/video/" + id, VimeoAllow, true
		}
	}
	return "", "", false
}
