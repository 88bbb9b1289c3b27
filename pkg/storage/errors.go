package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

// Sentinel errors for storage operations.
var (
	// Configuration errors.
	ErrInvalidConfig = errors.New("storage: invalid configuration")

	// S3 operation errors.
	ErrNotFound      = errors.New("storage: object not found")
	ErrAccessDenied  = errors.New("storage: access denied")
	ErrReadFailed    = errors.New("storage: read failed")
	ErrPresignFailed = errors.New("storage: presign failed")
	ErrBucketFailed  = errors.New("storage: bucket unreachable")
)

// wrapS3Error maps S3 errors onto sentinel errors.
// A missing object also matches i18n.ErrResourceNotFound so the engine treats it as an absent bundle.
// The original error is formatted with %v: callers match sentinels, not AWS types.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%w: %w: %v", ErrNotFound, i18n.ErrResourceNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %w: %v", ErrNotFound, i18n.ErrResourceNotFound, err)
	}

	return fmt.Errorf("%w: %v", fallback, err)
}
