package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/theapemachine/herewego/pkg/digest"
	"github.com/theapemachine/herewego/pkg/service"
)

var errNoEntity = errors.New("no entity provided")

// Notifier delivers a finished digest somewhere besides stdout.
type Notifier interface {
	Notify(ctx context.Context, entity string, result digest.Result) error
}

type digesterFactory func(ctx context.Context) (service.Digester, error)

/*
runDigest joins args into the entity, runs the pipeline and prints one JSON
object to out. A missing entity prints the error object and fails.
*/
func runDigest(ctx context.Context, args []string, out io.Writer, build digesterFactory, notifier Notifier) error {
	entity := strings.TrimSpace(strings.Join(args, " "))

	if entity == "" {
		fmt.Fprintln(out, `{"error": "No entity provided"}`)
		return errNoEntity
	}

	digester, err := build(ctx)

	if err != nil {
		return err
	}

	result, err := digester.Run(ctx, entity)

	if err != nil {
		return err
	}

	if err = digest.Encode(out, result); err != nil {
		return err
	}

	if notifier == nil {
		return nil
	}

	return notifier.Notify(ctx, entity, result)
}
