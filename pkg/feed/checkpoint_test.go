package feed

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
)

func TestCheckpoint(t *testing.T) {
	Convey("Given a checkpoint path", t, func() {
		path := filepath.Join(t.TempDir(), "state", "checkpoint.yml")

		Convey("When nothing has been saved", func() {
			checkpoint, err := LoadCheckpoint(path)

			Convey("It should yield no marker", func() {
				So(err, ShouldBeNil)
				So(checkpoint, ShouldBeNil)
				So(checkpoint.StopMarker(), ShouldBeNil)
			})
		})

		Convey("When a run is saved", func() {
			posts := []Post{{Text: "newest", Date: "06/02/2025"}, {Text: "older", Date: "06/01/2025"}}
			So(SaveCheckpoint(path, posts), ShouldBeNil)

			checkpoint, err := LoadCheckpoint(path)

			Convey("It should return the newest post as the marker", func() {
				So(err, ShouldBeNil)
				So(checkpoint.Posts, ShouldEqual, 2)
				So(*checkpoint.StopMarker(), ShouldResemble, StopMarker{Date: "06/02/2025", Text: "newest"})
			})

			Convey("It should not be cleared by an empty run", func() {
				So(SaveCheckpoint(path, nil), ShouldBeNil)
				checkpoint, err := LoadCheckpoint(path)
				So(err, ShouldBeNil)
				So(checkpoint.StopMarker().Text, ShouldEqual, "newest")
			})
		})
	})
}

func TestNewest(t *testing.T) {
	tests := []struct {
		name  string
		posts []Post
		want  Post
		ok    bool
	}{
		{
			name: "latest date wins over feed position",
			posts: []Post{
				{Text: "old", Date: "05/01/2025"},
				{Text: "new", Date: "05/02/2025"},
			},
			want: Post{Text: "new", Date: "05/02/2025"},
			ok:   true,
		},
		{
			name: "pinned posts are ignored even when newer",
			posts: []Post{
				{Text: "pinned", Date: "06/01/2025", Pinned: true},
				{Text: "latest", Date: "05/02/2025"},
			},
			want: Post{Text: "latest", Date: "05/02/2025"},
			ok:   true,
		},
		{
			name: "ties keep the first in feed order",
			posts: []Post{
				{Text: "first", Date: "05/02/2025"},
				{Text: "second", Date: "05/02/2025"},
			},
			want: Post{Text: "first", Date: "05/02/2025"},
			ok:   true,
		},
		{
			name:  "only pinned or undated posts",
			posts: []Post{{Text: "pinned", Date: "06/01/2025", Pinned: true}, {Text: "undated", Date: "soon"}},
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Newest(tt.posts)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
