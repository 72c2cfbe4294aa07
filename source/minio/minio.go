// Package minio exposes objects in MinIO and other S3-compatible stores as
// io.ReaderAt so products can be read in place with sicd.OpenReader.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// ErrNotFound is returned when the bucket has no object under the key.
var ErrNotFound = errors.New("minio: object not found")

// Object is a read-only view of one stored object.
type Object struct {
	ctx    context.Context
	client *minio.Client
	bucket string
	key    string
	size   int64
}

// Open stats bucket/key and returns a reader over it. ReadAt uses ctx for
// every request.
func Open(ctx context.Context, client *minio.Client, bucket, key string) (*Object, error) {
	info, err := client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, fmt.Errorf("%s/%s: %w", bucket, key, ErrNotFound)
		}
		return nil, err
	}

	return &Object{
		ctx:    ctx,
		client: client,
		bucket: bucket,
		key:    key,
		size:   info.Size,
	}, nil
}

// Size returns the object length in bytes.
func (o *Object) Size() int64 {
	return o.size
}

// Name returns bucket/key.
func (o *Object) Name() string {
	return o.bucket + "/" + o.key
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

	end := off + int64(len(p)) - 1
	if end >= o.size {
		end = o.size - 1
	}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return 0, err
	}

	obj, err := o.client.GetObject(o.ctx, o.bucket, o.key, opts)
	if err != nil {
		return 0, err
	}
	defer obj.Close()

	want := int(end - off + 1)
	n, err := io.ReadFull(obj, p[:want])
	if err != nil {
		return n, err
	}
	if want < len(p) {
		return n, io.EOF
	}
	return n, nil
}
