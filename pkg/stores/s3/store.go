package s3

import (
	"context"
	"fmt"
	"io"
	"os"
)

/*
Store is the read side of an object store: enough to fetch index artifacts.
*/
type Store interface {
	Get(ctx context.Context, bucketName, objectKey string) (io.ReadCloser, error)
}

/*
Config selects and configures a Store driver.
*/
type Config struct {
	Driver   string
	Endpoint string
	Region   string
	UseSSL   bool
}

/*
NewStore builds the configured driver. "s3" uses the AWS SDK and its default
credential chain; "minio" talks to Endpoint with the AWS_ACCESS_KEY_ID and
AWS_SECRET_ACCESS_KEY environment variables.
*/
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "s3":
		return NewConn(ctx, cfg.Region)
	case "minio", "":
		return NewMinioConn(
			cfg.Endpoint,
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			cfg.Region,
			cfg.UseSSL,
		)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
