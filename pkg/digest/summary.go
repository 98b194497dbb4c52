package digest

import (
	"context"

	"github.com/theapemachine/herewego/pkg/provider"
)

const summaryPrompt = "You are a football analyst.\n\n" +
	"Given the following tweets about {{.entity}}, summarize their current situation. " +
	"Focus on any recent transfer rumors, injuries, management changes, or rumors. " +
	"Give the summary in easily readable bullet points, only giving a sentence per point. " +
	"Make the section at most four bullet points long.\n\n" +
	"Tweets:\n" +
	"{{.context}}\n" +
	"Summary:"

// Summarizer turns a formatted context block into a short bullet summary.
type Summarizer struct {
	chain *Chain
}

func NewSummarizer(completer provider.Completer) *Summarizer {
	return &Summarizer{chain: NewChain("summary", summaryPrompt, completer)}
}

/*
Summarize returns the completion verbatim. The bullet cap lives in the
prompt only and is not checked here.
*/
func (summarizer *Summarizer) Summarize(ctx context.Context, entity, block string) (string, error) {
	return summarizer.chain.Run(ctx, map[string]string{
		"entity":  entity,
		"context": block,
	})
}
