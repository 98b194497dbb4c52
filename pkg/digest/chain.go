package digest

import (
	"bytes"
	"context"
	"text/template"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/herewego/pkg/errors"
	"github.com/theapemachine/herewego/pkg/provider"
)

/*
Chain renders a prompt template and sends the result to a completion
service. It returns the raw completion; parsing belongs to whoever owns the
chain.
*/
type Chain struct {
	name      string
	template  *template.Template
	completer provider.Completer
}

func NewChain(name, tmpl string, completer provider.Completer) *Chain {
	return &Chain{
		name:      name,
		template:  template.Must(template.New(name).Option("missingkey=error").Parse(tmpl)),
		completer: completer,
	}
}

func (chain *Chain) Run(ctx context.Context, vars map[string]string) (string, error) {
	var prompt bytes.Buffer

	if err := chain.template.Execute(&prompt, vars); err != nil {
		return "", errors.ErrInvalidInput.WithMessagef("render %s prompt", chain.name).Wrap(err)
	}

	log.Debug("running chain", "chain", chain.name, "promptBytes", prompt.Len())

	out, err := chain.completer.Complete(ctx, prompt.String())

	if err != nil {
		log.Error("completion failed", "chain", chain.name, "error", err)
		return "", errors.ErrCompletionService.WithMessagef("%s completion", chain.name).Wrap(err)
	}

	return out, nil
}
