// Package s3 exposes S3 buckets as a storage scheme. Paths take the form
// /bucket/key, and directories are the key prefixes implied by object
// names.
package s3

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
	"github.com/arthur-debert/softsync/pkg/storage"
)

// SchemeName is the root prefix selecting this scheme, as in s3://bucket/dir.
const SchemeName = "s3"

// API is the subset of the S3 client used by the scheme.
type API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CopyObject(ctx context.Context, in *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type scheme struct {
	api API
}

// New returns an S3 scheme backed by api.
func New(api API) storage.Scheme {
	return &scheme{api: api}
}

// Register adds the S3 scheme to r along with copy syncers between S3 and
// the local filesystem. Objects cannot be linked, so S3 to S3 copies too.
func Register(r *storage.Registry, api API) error {
	if err := r.RegisterScheme(New(api)); err != nil {
		return err
	}
	pairs := [][2]string{
		{SchemeName, storage.FileSchemeName},
		{storage.FileSchemeName, SchemeName},
		{SchemeName, SchemeName},
	}
	for _, p := range pairs {
		if err := r.RegisterSyncer(p[0], p[1], storage.CopySyncer{}); err != nil {
			return err
		}
	}
	return nil
}

func (s *scheme) Name() string { return SchemeName }

func (s *scheme) Resolve(location string) (string, error) {
	p := path.Clean("/" + location)
	if p == "/" {
		return "", errors.Newf(errors.ErrInvalidRoot, "invalid root, no bucket: '%s'", location)
	}
	return p, nil
}

// split returns the bucket and object key for p. The key is empty for the
// bucket itself.
func split(p string) (string, string) {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	bucket, key, _ := strings.Cut(p, "/")
	return bucket, key
}

func (s *scheme) Exists(ctx context.Context, p string) (bool, error) {
	ok, err := s.IsFile(ctx, p)
	if err != nil || ok {
		return ok, err
	}
	return s.IsDir(ctx, p)
}

func (s *scheme) IsFile(ctx context.Context, p string) (bool, error) {
	bucket, key := split(p)
	if key == "" {
		return false, nil
	}
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrStorage, "failed to head s3://%s/%s", bucket, key)
	}
	return true, nil
}

func (s *scheme) IsDir(ctx context.Context, p string) (bool, error) {
	bucket, key := split(p)
	if key == "" {
		_, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
		if err != nil {
			if isNotFound(err) {
				return false, nil
			}
			return false, errors.Wrapf(err, errors.ErrStorage, "failed to head bucket %s", bucket)
		}
		return true, nil
	}
	out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(key + "/"),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrStorage, "failed to list s3://%s/%s", bucket, key)
	}
	return len(out.Contents) > 0 || len(out.CommonPrefixes) > 0, nil
}

func (s *scheme) ReadDir(ctx context.Context, p string) ([]storage.DirEntry, error) {
	bucket, key := split(p)
	prefix := ""
	if key != "" {
		prefix = key + "/"
	}

	var entries []storage.DirEntry
	paginator := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrStorage, "failed to list s3://%s/%s", bucket, key)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" {
				continue
			}
			entries = append(entries, storage.DirEntry{Name: name, Kind: storage.KindFile})
		}
		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name == "" {
				continue
			}
			entries = append(entries, storage.DirEntry{Name: name, Kind: storage.KindDir})
		}
	}
	return entries, nil
}

// MkdirAll is a no-op: prefixes exist once an object is written under them.
func (s *scheme) MkdirAll(context.Context, string) error {
	return nil
}

func (s *scheme) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	bucket, key := split(p)
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, errors.Newf(errors.ErrNotFound, "no such object: s3://%s/%s", bucket, key)
		}
		return nil, errors.Wrapf(err, errors.ErrStorage, "failed to get s3://%s/%s", bucket, key)
	}
	return out.Body, nil
}

// Create buffers writes in memory and uploads them on Close.
func (s *scheme) Create(ctx context.Context, p string) (io.WriteCloser, error) {
	bucket, key := split(p)
	if key == "" {
		return nil, errors.Newf(errors.ErrInvalidPath, "cannot write to bucket root: %s", p)
	}
	return &objectWriter{ctx: ctx, api: s.api, bucket: bucket, key: key}, nil
}

func (s *scheme) Symlink(context.Context, string, string) error {
	return errors.New(errors.ErrNotSupported, "symbolic links are not supported by s3")
}

func (s *scheme) Hardlink(context.Context, string, string) error {
	return errors.New(errors.ErrNotSupported, "hard links are not supported by s3")
}

func (s *scheme) Rename(ctx context.Context, oldpath, newpath string) error {
	srcBucket, srcKey := split(oldpath)
	dstBucket, dstKey := split(newpath)
	_, err := s.api.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dstBucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(copySource(srcBucket, srcKey)),
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to copy %s to %s", oldpath, newpath)
	}
	return s.Remove(ctx, oldpath)
}

// Remove deletes the object at p. Prefixes have no object of their own,
// so removing one only succeeds once it is empty.
func (s *scheme) Remove(ctx context.Context, p string) error {
	bucket, key := split(p)
	if key == "" {
		return errors.Newf(errors.ErrInvalidPath, "cannot remove bucket root: %s", p)
	}
	isFile, err := s.IsFile(ctx, p)
	if err != nil {
		return err
	}
	if !isFile {
		isDir, err := s.IsDir(ctx, p)
		if err != nil {
			return err
		}
		if isDir {
			return errors.Newf(errors.ErrStorage, "directory not empty: %s", p)
		}
		return nil
	}
	if _, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to delete s3://%s/%s", bucket, key)
	}
	return nil
}

type objectWriter struct {
	ctx    context.Context
	api    API
	bucket string
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *objectWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New(errors.ErrStorage, "write to closed object")
	}
	return w.buf.Write(p)
}

func (w *objectWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, err := w.api.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buf.Bytes()),
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to put s3://%s/%s", w.bucket, w.key)
	}
	logger := logging.GetLogger("storage.s3")
	logger.Debug().
		Str("bucket", w.bucket).
		Str("key", w.key).
		Int("bytes", w.buf.Len()).
		Msg("Uploaded object")
	return nil
}

func copySource(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return bucket + "/" + strings.Join(segments, "/")
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	var nsb *types.NoSuchBucket
	return stderrors.As(err, &nf) || stderrors.As(err, &nsk) || stderrors.As(err, &nsb)
}
