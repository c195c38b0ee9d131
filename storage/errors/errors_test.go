package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{name: "op only", err: NewError("listBuckets", cause), want: "storage.listBuckets: boom"},
		{name: "bucket", err: NewBucketError("deleteBucket", "b1", cause), want: "storage.deleteBucket bucket b1: boom"},
		{name: "key", err: NewError("validateObjectKey", cause).WithKey("k"), want: "storage.validateObjectKey object k: boom"},
		{name: "bucket and key", err: NewObjectError("uploadFile", "b1", "a/b.txt", cause), want: "storage.uploadFile b1/a/b.txt: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

func TestError_WithMessageKeepsChain(t *testing.T) {
	err := NewBucketError("createBucket", "b1", ErrInvalidBucketName).WithMessage("too short")

	assert.Equal(t, "storage.createBucket bucket b1: too short: storage: invalid bucket name", err.Error())
	assert.ErrorIs(t, err, ErrInvalidBucketName)
	assert.False(t, IsBucketNotFound(err))
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsBucketNotFound(NewError("x", ErrBucketNotFound)))
	assert.True(t, IsBucketAlreadyOwned(NewError("x", ErrBucketAlreadyOwned)))
	assert.True(t, IsAccessDenied(NewError("x", ErrAccessDenied)))
	assert.False(t, IsAccessDenied(errors.New("other")))
}
