package feed

import "time"

const (
	// DateLayout is the MM/DD/YYYY form every Post date is normalized to.
	DateLayout = "01/02/2006"
	// StampLayout is the layout of the datetime attribute on a post's time element.
	StampLayout = "2006-01-02T15:04:05.000Z"
)

/*
Post is a single entry recovered from the feed. Two posts are the same post
when their Text is equal; the Date plays no part in identity. Pinned posts
render at the top of every visit and are never used as a stop marker.
*/
type Post struct {
	Text   string `json:"text"`
	Date   string `json:"date"`
	Pinned bool   `json:"-"`
}

/*
StopMarker identifies the last post seen by a previous run. A scrape ends
once it accepts a post whose date and text both equal the marker.
*/
type StopMarker struct {
	Date string `json:"date" yaml:"date"`
	Text string `json:"text" yaml:"text"`
}

// NewStopMarker returns nil when either half is empty, so a partial marker never stops a run.
func NewStopMarker(date, text string) *StopMarker {
	if date == "" || text == "" {
		return nil
	}

	return &StopMarker{Date: date, Text: text}
}

func (marker *StopMarker) Matches(post Post) bool {
	return marker != nil && post.Date == marker.Date && post.Text == marker.Text
}

// normalizeStamp turns a raw datetime attribute into a DateLayout date.
func normalizeStamp(stamp string) (string, error) {
	t, err := time.Parse(StampLayout, stamp)

	if err != nil {
		return "", err
	}

	return t.Format(DateLayout), nil
}
