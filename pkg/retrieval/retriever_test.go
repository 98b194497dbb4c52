package retrieval

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/herewego/pkg/index"
)

type fakeSearcher struct {
	docs  []index.Document
	err   error
	k     int
	query string
}

func (searcher *fakeSearcher) Search(ctx context.Context, query string, k int) ([]index.Document, error) {
	searcher.k = k
	searcher.query = query

	if searcher.err != nil {
		return nil, searcher.err
	}

	if k < len(searcher.docs) {
		return searcher.docs[:k], nil
	}

	return searcher.docs, nil
}

func corpus() []index.Document {
	return []index.Document{
		{Content: "Kylian MBAPPE completes medical", Metadata: index.Metadata{Date: "05/31/2025"}},
		{Content: "Real Madrid unveil new signing", Metadata: index.Metadata{Keywords: []string{"Kylian Mbappé", "kylian mbappe"}}},
		{Content: "Ten Hag leaves United", Metadata: index.Metadata{Date: "05/30/2025", Keywords: []string{"Ten Hag"}}},
		{Content: "mbappe injury update", Metadata: index.Metadata{Date: "05/29/2025"}},
	}
}

func TestRetrieve(t *testing.T) {
	Convey("Given an index with mixed relevance", t, func() {
		searcher := &fakeSearcher{docs: corpus()}
		retriever := NewRetriever(searcher)

		Convey("When retrieving an entity", func() {
			hits, err := retriever.Retrieve(context.Background(), "Mbappe", 20)

			Convey("It should keep only mentions, in rank order", func() {
				So(err, ShouldBeNil)
				So(hits, ShouldResemble, []Hit{
					{Text: "Kylian MBAPPE completes medical", Date: "05/31/2025"},
					{Text: "Real Madrid unveil new signing", Date: index.UnknownDate},
					{Text: "mbappe injury update", Date: "05/29/2025"},
				})
				So(searcher.query, ShouldEqual, "Mbappe")
			})

			Convey("Every hit should mention the entity", func() {
				for _, hit := range hits {
					mentioned := strings.Contains(strings.ToLower(hit.Text), "mbappe") ||
						hit.Text == "Real Madrid unveil new signing"
					So(mentioned, ShouldBeTrue)
				}
			})

			Convey("It should be repeatable", func() {
				again, err := retriever.Retrieve(context.Background(), "Mbappe", 20)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, hits)
			})
		})

		Convey("When k bounds the candidate pool", func() {
			hits, err := retriever.Retrieve(context.Background(), "Mbappe", 1)

			Convey("It should filter within the pool only", func() {
				So(err, ShouldBeNil)
				So(len(hits), ShouldEqual, 1)
				So(searcher.k, ShouldEqual, 1)
			})
		})

		Convey("When k is not set", func() {
			_, err := retriever.Retrieve(context.Background(), "Mbappe", 0)

			Convey("It should use the default pool", func() {
				So(err, ShouldBeNil)
				So(searcher.k, ShouldEqual, DefaultK)
			})
		})

		Convey("When nothing mentions the entity", func() {
			hits, err := retriever.Retrieve(context.Background(), "Haaland", 20)

			Convey("It should return an empty result", func() {
				So(err, ShouldBeNil)
				So(hits, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a failing index", t, func() {
		retriever := NewRetriever(&fakeSearcher{err: stderrors.New("boom")})
		_, err := retriever.Retrieve(context.Background(), "Mbappe", 20)

		Convey("It should propagate the error", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMentions(t *testing.T) {
	Convey("Given keyword matching", t, func() {
		doc := index.Document{Content: "x", Metadata: index.Metadata{Keywords: []string{"Erling Haaland"}}}

		Convey("It should match a substring of a keyword", func() {
			So(Mentions(doc, "haaland"), ShouldBeTrue)
			So(Mentions(doc, "ERLING HAALAND"), ShouldBeTrue)
		})

		Convey("It should not match a keyword contained in the entity", func() {
			So(Mentions(doc, "Erling Haaland Jr"), ShouldBeFalse)
		})
	})
}
