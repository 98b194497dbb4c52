package s3

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

/*
MinioConn reads objects from any S3-compatible endpoint through minio-go.
*/
type MinioConn struct {
	client *minio.Client
}

func NewMinioConn(endpoint, accessKey, secretKey, region string, useSSL bool) (*MinioConn, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})

	if err != nil {
		return nil, err
	}

	return &MinioConn{client: client}, nil
}

func (conn *MinioConn) Get(
	ctx context.Context,
	bucketName string,
	objectKey string,
) (io.ReadCloser, error) {
	obj, err := conn.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})

	if err != nil {
		return nil, err
	}

	defer obj.Close()

	buf := bytes.NewBuffer([]byte{})

	// minio defers request errors until the first read.
	if _, err = io.Copy(buf, obj); err != nil {
		return nil, err
	}

	return io.NopCloser(buf), nil
}
