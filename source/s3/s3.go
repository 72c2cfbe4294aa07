// Package s3 exposes objects in Amazon S3 as io.ReaderAt so products can be
// read in place with sicd.OpenReader. Every read is a ranged GET.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/time/rate"
)

// Client is the subset of *s3.Client used for reading.
type Client interface {
	HeadObject(ctx context.Context, params *awss3.HeadObjectInput, optFns ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
}

// ErrNotFound is returned when the bucket has no object under the key.
var ErrNotFound = errors.New("s3: object not found")

// Object is a read-only view of one S3 object.
//
// ReadAt uses the context given to Open for every request.
type Object struct {
	ctx     context.Context
	client  Client
	bucket  string
	key     string
	size    int64
	limiter *rate.Limiter
}

// Option configures an Object.
type Option func(*Object)

// WithRequestLimit paces ranged GETs through l. Reads block until the
// limiter admits them or the Open context ends.
func WithRequestLimit(l *rate.Limiter) Option {
	return func(o *Object) {
		o.limiter = l
	}
}

// Open stats bucket/key and returns a reader over it.
func Open(ctx context.Context, client Client, bucket, key string, opts ...Option) (*Object, error) {
	head, err := client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrNotFound)
		}
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrNotFound)
		}
		return nil, err
	}

	o := &Object{
		ctx:    ctx,
		client: client,
		bucket: bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Size returns the object length in bytes.
func (o *Object) Size() int64 {
	return o.size
}

// Name returns the s3:// URL of the object.
func (o *Object) Name() string {
	return "s3://" + o.bucket + "/" + o.key
}

// ReadAt implements io.ReaderAt with a ranged GET.
func (o *Object) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("%s: negative offset %d", o.Name(), off)
	}
	if off >= o.size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := o.ctx.Err(); err != nil {
		return 0, err
	}
	if o.limiter != nil {
		if err := o.limiter.Wait(o.ctx); err != nil {
			return 0, err
		}
	}

	end := off + int64(len(p)) - 1
	if end >= o.size {
		end = o.size - 1
	}

	resp, err := o.client.GetObject(o.ctx, &awss3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	want := int(end - off + 1)
	n, err := io.ReadFull(resp.Body, p[:want])
	if err != nil {
		return n, err
	}
	if want < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// ParseURL splits "s3://bucket/key" into its bucket and key.
func ParseURL(u string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(u, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 URL: %q", u)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 URL needs a bucket and a key: %q", u)
	}
	return bucket, key, nil
}
