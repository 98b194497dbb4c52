package feed

import (
	"fmt"
	"strings"
)

// renderFeed builds a page in the shape of the live feed: one cell per post.
func renderFeed(posts ...Post) string {
	var b strings.Builder

	b.WriteString("<html><body><main>")

	for _, post := range posts {
		b.WriteString(renderCell(post))
	}

	b.WriteString("</main></body></html>")
	return b.String()
}

func renderCell(post Post) string {
	label := ""

	if post.Pinned {
		label = `<div data-testid="socialContext"><span>Pinned</span></div>`
	}

	return fmt.Sprintf(
		`<div data-testid="cellInnerDiv"><article>%s<div lang="en">%s</div><time datetime="%s">x</time></article></div>`,
		label, post.Text, stampFor(post.Date),
	)
}

// stampFor converts an MM/DD/YYYY date back into a datetime attribute.
func stampFor(date string) string {
	return fmt.Sprintf("%s-%s-%sT10:15:30.000Z", date[6:10], date[0:2], date[3:5])
}
