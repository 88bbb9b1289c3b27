package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

// objectAPI is the subset of *s3.Client the loader uses.
type objectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// presignAPI is the subset of *s3.PresignClient the loader uses.
type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Loader serves translation bundles stored as objects in an S3-compatible bucket.
// Resource "i18n/messages/it_it.lang" is read from "<prefix>/i18n/messages/it_it.lang".
type S3Loader struct {
	client    objectAPI
	presigner presignAPI
	cfg       Config
}

// New creates a new S3Loader with the given configuration.
func New(cfg Config) (*S3Loader, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	client := s3.New(s3.Options{}, opts...)
	return &S3Loader{
		client:    client,
		presigner: s3.NewPresignClient(client),
		cfg:       cfg,
	}, nil
}

// Factory builds External tier loaders: the engine's base directory becomes a
// sub-prefix of cfg.Prefix.
func Factory(cfg Config) i18n.LoaderFactory {
	return func(baseDir string) (i18n.Loader, error) {
		return New(cfg.WithPrefix(baseDir))
	}
}

// Open downloads the object for name. The caller closes the returned reader.
func (s *S3Loader) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := i18n.CheckResourceName(name); err != nil {
		return nil, err
	}

	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrReadFailed)
	}
	return output.Body, nil
}

// Locate returns a presigned GET URL for name. It does not check that the object exists.
func (s *S3Loader) Locate(ctx context.Context, name string) (string, error) {
	if err := i18n.CheckResourceName(name); err != nil {
		return "", err
	}

	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(name)),
	}, func(po *s3.PresignOptions) {
		po.Expires = s.cfg.URLExpiry
	})
	if err != nil {
		return "", wrapS3Error(err, ErrPresignFailed)
	}
	return result.URL, nil
}

// Healthcheck returns a function reporting whether the bucket is reachable.
func (s *S3Loader) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.cfg.Bucket)})
		if err != nil {
			return wrapS3Error(err, ErrBucketFailed)
		}
		return nil
	}
}

// String identifies the loader in logs.
func (s *S3Loader) String() string {
	if s.cfg.Prefix == "" {
		return fmt.Sprintf("s3://%s", s.cfg.Bucket)
	}
	return fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, s.cfg.Prefix)
}

func (s *S3Loader) key(name string) string {
	if s.cfg.Prefix == "" {
		return name
	}
	return s.cfg.Prefix + "/" + name
}

var _ i18n.Loader = (*S3Loader)(nil)
