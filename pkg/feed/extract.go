package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
)

const (
	containerSelector = `div[data-testid="cellInnerDiv"]`
	bodySelector      = "div[lang]"
	contextSelector   = `[data-testid="socialContext"]`
)

/*
ExtractPosts scans every rendered post container in html and returns the
candidates it could recover, in document order. A container without an
article, without a time element or with an unparseable timestamp is
skipped. Text may come back empty; deciding what to keep is up to Session.
*/
func ExtractPosts(html string) ([]Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))

	if err != nil {
		return nil, err
	}

	var posts []Post

	doc.Find(containerSelector).Each(func(i int, cell *goquery.Selection) {
		post, ok := extractPost(cell)

		if !ok {
			log.Debug("skipping post container", "index", i)
			return
		}

		posts = append(posts, post)
	})

	return posts, nil
}

func extractPost(cell *goquery.Selection) (Post, bool) {
	article := cell.Find("article").First()

	if article.Length() == 0 {
		return Post{}, false
	}

	var parts []string

	article.Find(bodySelector).Each(func(_ int, el *goquery.Selection) {
		parts = append(parts, el.Text())
	})

	stamp, ok := article.Find("time").First().Attr("datetime")

	if !ok {
		return Post{}, false
	}

	date, err := normalizeStamp(stamp)

	if err != nil {
		return Post{}, false
	}

	return Post{
		Text:   strings.TrimSpace(strings.Join(parts, "\n")),
		Date:   date,
		Pinned: strings.Contains(cell.Find(contextSelector).Text(), "Pinned"),
	}, true
}
