package feed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

/*
Checkpoint persists the newest post of a finished run so that the next run
can use it as its stop marker.
*/
type Checkpoint struct {
	Marker    StopMarker `yaml:"marker"`
	Posts     int        `yaml:"posts"`
	UpdatedAt time.Time  `yaml:"updated_at"`
}

/*
LoadCheckpoint reads the checkpoint at path. A missing file is not an error;
it returns a nil checkpoint so the caller scrapes without a marker.
*/
func LoadCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)

	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var checkpoint Checkpoint

	if err := yaml.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %s: %w", path, err)
	}

	return &checkpoint, nil
}

// StopMarker returns the stored marker, or nil for an empty checkpoint.
func (checkpoint *Checkpoint) StopMarker() *StopMarker {
	if checkpoint == nil {
		return nil
	}

	return NewStopMarker(checkpoint.Marker.Date, checkpoint.Marker.Text)
}

/*
SaveCheckpoint records the newest post of the run at path. It does nothing
when the run has no candidate so a failed run never clears a good marker.
*/
func SaveCheckpoint(path string, posts []Post) error {
	newest, ok := Newest(posts)

	if !ok {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	data, err := yaml.Marshal(&Checkpoint{
		Marker:    StopMarker{Date: newest.Date, Text: newest.Text},
		Posts:     len(posts),
		UpdatedAt: time.Now().UTC(),
	})

	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

/*
Newest returns the unpinned post with the latest date, the earliest in feed
order on a tie. Posts with an unparseable date are ignored.
*/
func Newest(posts []Post) (Post, bool) {
	var (
		newest Post
		latest time.Time
		found  bool
	)

	for _, post := range posts {
		if post.Pinned {
			continue
		}

		date, err := time.Parse(DateLayout, post.Date)

		if err != nil {
			continue
		}

		if !found || date.After(latest) {
			newest, latest, found = post, date, true
		}
	}

	return newest, found
}
