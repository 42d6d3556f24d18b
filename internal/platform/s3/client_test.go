package s3

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient("https://storage.example.com", "us-east-1", "datasets", "key", "secret")

	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "datasets", client.bucket)
}

func TestIsNotFoundError_Nil(t *testing.T) {
	assert.False(t, isNotFoundError(nil))
}

func TestIsNotFoundError_TypedErrors(t *testing.T) {
	assert.True(t, isNotFoundError(&types.NoSuchKey{}))
	assert.True(t, isNotFoundError(&types.NotFound{}))
	assert.True(t, isNotFoundError(fmt.Errorf("wrapped: %w", &types.NoSuchKey{})))
}

func TestIsNotFoundError_APIErrorCode(t *testing.T) {
	assert.True(t, isNotFoundError(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.True(t, isNotFoundError(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.False(t, isNotFoundError(&smithy.GenericAPIError{Code: "AccessDenied"}))
}

func TestIsNotFoundError_OtherError(t *testing.T) {
	assert.False(t, isNotFoundError(errors.New("connection refused")))
}
