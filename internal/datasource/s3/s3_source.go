// Package s3 implements an object-storage data source over the AWS S3 API.
package s3

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/rotisserie/eris"
)

// ObjectGetter is the slice of the S3 client the source needs. *s3.S3
// satisfies it; tests substitute a stub.
type ObjectGetter interface {
	GetObjectWithContext(ctx aws.Context, input *awss3.GetObjectInput, opts ...request.Option) (*awss3.GetObjectOutput, error)
}

// Source streams one object out of a bucket. The object body is returned
// as-is; no retries, no range requests.
type Source struct {
	client ObjectGetter
	bucket string
	key    string
}

// New returns a Source reading bucket/key through client.
func New(client ObjectGetter, bucket, key string) *Source {
	return &Source{client: client, bucket: bucket, key: key}
}

// NewFromSession builds a Source on a fresh S3 client from the ambient AWS
// session (env credentials, shared config, instance role).
func NewFromSession(sess *session.Session, bucket, key string) *Source {
	return New(awss3.New(sess), bucket, key)
}

// Open issues the GetObject call and hands back the body stream. Missing
// objects, missing buckets, and access denials surface here and abort the
// run; the caller owns closing the body.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.client.GetObjectWithContext(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, eris.Wrapf(err, "s3 source: get s3://%s/%s", s.bucket, s.key)
	}
	return out.Body, nil
}
