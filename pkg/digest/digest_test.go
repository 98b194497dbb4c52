package digest

import (
	"context"
	"strings"
	"sync"

	"github.com/theapemachine/herewego/pkg/retrieval"
)

/*
fakeCompleter answers by matching a fragment of the prompt, and records
every prompt it receives.
*/
type fakeCompleter struct {
	mu      sync.Mutex
	replies map[string]string
	err     error
	prompts []string
}

func (completer *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	completer.mu.Lock()
	defer completer.mu.Unlock()

	completer.prompts = append(completer.prompts, prompt)

	if completer.err != nil {
		return "", completer.err
	}

	for fragment, reply := range completer.replies {
		if strings.Contains(prompt, fragment) {
			return reply, nil
		}
	}

	return "", nil
}

func (completer *fakeCompleter) Calls() int {
	completer.mu.Lock()
	defer completer.mu.Unlock()

	return len(completer.prompts)
}

type fakeRetriever struct {
	hits []retrieval.Hit
	err  error
	k    int
}

func (retriever *fakeRetriever) Retrieve(ctx context.Context, entity string, k int) ([]retrieval.Hit, error) {
	retriever.k = k
	return retriever.hits, retriever.err
}

func numberedHits(n int) []retrieval.Hit {
	hits := make([]retrieval.Hit, n)

	for i := range hits {
		hits[i] = retrieval.Hit{Text: "post " + string(rune('A'+i)), Date: "05/01/2025"}
	}

	return hits
}
