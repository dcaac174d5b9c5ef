package leaning

import (
	"strings"

	"newspulse/internal/textutil"
)

// Leaning is the political-orientation bucket assigned to a news source.
type Leaning string

const (
	Left   Leaning = "left"
	Center Leaning = "center"
	Right  Leaning = "right"
)

// KeyOther is the extra distribution bucket used for articles whose source
// name is blank. The categorizer itself never returns it.
const KeyOther = "other"

// Buckets returns the distribution keys in canonical order.
func Buckets() []string {
	return []string{string(Left), string(Center), string(Right), KeyOther}
}

var leftSources = map[string]bool{
	"cnn": true, "msnbc": true, "the-guardian": true, "the-guardian-uk": true,
	"huffpost": true, "the-huffington-post": true, "vox": true,
	"mother-jones": true, "the-new-yorker": true, "slate": true,
	"the-atlantic": true, "vice-news": true, "salon": true,
	"daily-beast": true, "the-daily-beast": true,
}

var rightSources = map[string]bool{
	"fox-news": true, "breitbart-news": true, "the-daily-caller": true,
	"newsmax": true, "the-washington-times": true, "national-review": true,
	"new-york-post": true, "washington-examiner": true, "daily-mail": true,
	"the-american-conservative": true, "daily-wire": true, "the-daily-wire": true,
	"one-america-news": true, "the-federalist": true,
}

// For resolves a source to its leaning bucket. The canonical identifier is
// preferred; otherwise the friendly name is slugged and looked up. Sources in
// neither membership set land in center so that unmapped sources dilute the
// distribution rather than skew it.
func For(id, name string) Leaning {
	key := textutil.Slug(id)
	if key == "" {
		key = textutil.Slug(name)
	}
	switch {
	case leftSources[key]:
		return Left
	case rightSources[key]:
		return Right
	default:
		return Center
	}
}

// BucketFor returns the distribution key for an article's source fields:
// one of the three leanings, or "other" when both are blank.
func BucketFor(id, name string) string {
	if strings.TrimSpace(id) == "" && strings.TrimSpace(name) == "" {
		return KeyOther
	}
	return string(For(id, name))
}
