package intm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI is the subset of *s3.Client used to read packages from S3
type ObjectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ ObjectAPI = (*s3.Client)(nil)

// S3Object exposes an S3 object as an io.ReaderAt using ranged GETs
type S3Object struct {
	ctx    context.Context
	api    ObjectAPI
	bucket string
	key    string
	size   int64
}

var _ io.ReaderAt = (*S3Object)(nil)

// NewS3Object looks up the object size and returns a reader over it
func NewS3Object(ctx context.Context, api ObjectAPI, bucket, key string) (*S3Object, error) {
	head, err := api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object metadata: %w", err)
	}
	return &S3Object{
		ctx:    ctx,
		api:    api,
		bucket: bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

// Size returns the object length in bytes
func (o *S3Object) Size() int64 {
	return o.size
}

// URI returns the s3:// form of the object location
func (o *S3Object) URI() string {
	return "s3://" + o.bucket + "/" + o.key
}

// ReadAt implements io.ReaderAt
func (o *S3Object) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("negative offset")
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

	resp, err := o.api.GetObject(o.ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer resp.Body.Close()

	want := int(end - off + 1)
	n, err := io.ReadFull(resp.Body, p[:want])
	if err == nil && want < len(p) {
		err = io.EOF
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return n, err
}

// OpenS3Archive opens a package stored in S3
func OpenS3Archive(ctx context.Context, api ObjectAPI, bucket, key string, opts ...ArchiveOption) (*Archive, error) {
	uri := "s3://" + bucket + "/" + key
	obj, err := NewS3Object(ctx, api, bucket, key)
	if err != nil {
		return nil, NewArchiveAccessError(uri, "failed to open package", err)
	}
	return NewArchive(obj, obj.Size(), uri, opts...)
}

// ParseS3URI splits "s3://bucket/key" into its parts
func ParseS3URI(uri string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(uri, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// IsS3URI reports whether a source argument names an S3 object
func IsS3URI(uri string) bool {
	_, _, ok := ParseS3URI(uri)
	return ok
}
