package retrieval

import (
	"fmt"
	"strings"
)

// NoTweetsFound is returned by Format for an empty hit list. Callers compare against it.
const NoTweetsFound = "No tweets found"

// Format renders hits as "[date] text" blocks separated by blank lines.
func Format(hits []Hit) string {
	if len(hits) == 0 {
		return NoTweetsFound
	}

	var b strings.Builder

	for _, hit := range hits {
		fmt.Fprintf(&b, "[%s] %s\n\n", hit.Date, hit.Text)
	}

	return b.String()
}
