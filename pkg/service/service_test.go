package service

import (
	"context"

	"github.com/theapemachine/herewego/pkg/digest"
)

type fakeDigester struct {
	result   digest.Result
	err      error
	entities []string
	live     []bool
}

func (digester *fakeDigester) Run(ctx context.Context, entity string) (digest.Result, error) {
	digester.entities = append(digester.entities, entity)
	digester.live = append(digester.live, ctx != nil && ctx.Err() == nil)
	return digester.result, digester.err
}
