package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

// mockAPIError implements smithy.APIError for testing.
type mockAPIError struct {
	code    string
	message string
}

func (e *mockAPIError) ErrorCode() string             { return e.code }
func (e *mockAPIError) ErrorMessage() string          { return e.message }
func (e *mockAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultUnknown }
func (e *mockAPIError) Error() string                 { return fmt.Sprintf("%s: %s", e.code, e.message) }

func TestWrapS3Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want []error
	}{
		{"NoSuchKey code", &mockAPIError{code: "NoSuchKey"}, []error{ErrNotFound, i18n.ErrResourceNotFound}},
		{"NotFound code", &mockAPIError{code: "NotFound"}, []error{ErrNotFound, i18n.ErrResourceNotFound}},
		{"NoSuchBucket code", &mockAPIError{code: "NoSuchBucket"}, []error{ErrNotFound}},
		{"AccessDenied code", &mockAPIError{code: "AccessDenied"}, []error{ErrAccessDenied}},
		{"Forbidden code", &mockAPIError{code: "Forbidden"}, []error{ErrAccessDenied}},
		{"NoSuchKey typed error", &types.NoSuchKey{}, []error{ErrNotFound, i18n.ErrResourceNotFound}},
		{"unknown API error code", &mockAPIError{code: "SlowDown"}, []error{ErrReadFailed}},
		{"fallback error", errors.New("some error"), []error{ErrReadFailed}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := wrapS3Error(tt.err, ErrReadFailed)
			for _, want := range tt.want {
				require.ErrorIs(t, wrapped, want)
			}
		})
	}

	t.Run("access denied is not a missing resource", func(t *testing.T) {
		t.Parallel()
		wrapped := wrapS3Error(&mockAPIError{code: "AccessDenied"}, ErrReadFailed)
		require.NotErrorIs(t, wrapped, i18n.ErrResourceNotFound)
	})
}
