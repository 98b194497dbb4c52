package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/charmbracelet/log"
)

/*
Conn reads objects through the AWS SDK. Credentials and region come from the
default AWS chain (environment, shared config, instance role).
*/
type Conn struct {
	Client *s3.Client
}

func NewConn(ctx context.Context, region string) (*Conn, error) {
	var opts []func(*config.LoadOptions) error

	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)

	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &Conn{Client: s3.NewFromConfig(cfg)}, nil
}

/*
Get reads the whole object into memory before returning, so a broken
transfer surfaces here rather than half way through a caller's copy.
*/
func (conn *Conn) Get(
	ctx context.Context,
	bucketName string,
	objectKey string,
) (io.ReadCloser, error) {
	buf := bytes.NewBuffer([]byte{})

	result, err := conn.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	})

	if err != nil {
		var noKey *types.NoSuchKey

		if errors.As(err, &noKey) {
			log.Error("object does not exist", "bucket", bucketName, "key", objectKey)
			err = noKey
		}

		return nil, err
	}

	defer result.Body.Close()

	if _, err = io.Copy(buf, result.Body); err != nil {
		return nil, err
	}

	return io.NopCloser(buf), nil
}
