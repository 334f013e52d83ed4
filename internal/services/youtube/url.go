package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"inquest/internal/services"
)

// Shell-escaped URLs arrive when users paste quoted links; the escapes are
// stripped before matching.
var urlUnescaper = strings.NewReplacer(`\?`, "?", `\&`, "&", `\=`, "=")

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`watch\?.*v=([0-9A-Za-z_-]{11})`),
}

// ResolveVideoID extracts the 11-character video ID from a YouTube URL.
// Standard watch URLs, short youtu.be links, and embed URLs are supported.
func ResolveVideoID(rawURL string) (string, error) {
	cleaned := urlUnescaper.Replace(strings.TrimSpace(rawURL))
	if cleaned == "" {
		return "", services.Wrap(services.ErrValidation, "youtube", "resolve video id", "url is empty", nil)
	}

	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(cleaned); match != nil {
			return match[1], nil
		}
	}

	if parsed, err := url.Parse(cleaned); err == nil {
		if v := parsed.Query().Get("v"); v != "" {
			return v, nil
		}
	}

	return "", services.Wrap(services.ErrValidation, "youtube", "resolve video id", fmt.Sprintf("could not extract video id from %q", rawURL), nil)
}
