package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) HeadObject(ctx context.Context, params *awss3.HeadObjectInput, optFns ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awss3.HeadObjectOutput)
	return out, args.Error(1)
}

func (m *mockClient) GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awss3.GetObjectOutput)
	return out, args.Error(1)
}

func rangeOutput(data []byte, start, end int64) *awss3.GetObjectOutput {
	return &awss3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data[start : end+1])),
		ContentLength: aws.Int64(end - start + 1),
	}
}

func rangeMatcher(start, end int64) any {
	want := fmt.Sprintf("bytes=%d-%d", start, end)
	return mock.MatchedBy(func(in *awss3.GetObjectInput) bool {
		return aws.ToString(in.Range) == want &&
			aws.ToString(in.Bucket) == "products" &&
			aws.ToString(in.Key) == "collect.ntf"
	})
}

func openTest(t *testing.T, client *mockClient, size int64) *Object {
	t.Helper()
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *awss3.HeadObjectInput) bool {
		return aws.ToString(in.Bucket) == "products" && aws.ToString(in.Key) == "collect.ntf"
	})).Return(&awss3.HeadObjectOutput{ContentLength: aws.Int64(size)}, nil).Once()

	obj, err := Open(context.Background(), client, "products", "collect.ntf")
	require.NoError(t, err)
	return obj
}

func TestOpen(t *testing.T) {
	client := new(mockClient)
	obj := openTest(t, client, 100)

	assert.Equal(t, int64(100), obj.Size())
	assert.Equal(t, "s3://products/collect.ntf", obj.Name())
	client.AssertExpectations(t)
}

func TestOpen_NotFound(t *testing.T) {
	for _, notFound := range []error{&types.NotFound{}, &types.NoSuchKey{}} {
		client := new(mockClient)
		client.On("HeadObject", mock.Anything, mock.Anything).Return(nil, notFound).Once()

		_, err := Open(context.Background(), client, "products", "missing.ntf")
		assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	}
}

func TestOpen_OtherError(t *testing.T) {
	client := new(mockClient)
	boom := errors.New("access denied")
	client.On("HeadObject", mock.Anything, mock.Anything).Return(nil, boom).Once()

	_, err := Open(context.Background(), client, "products", "collect.ntf")
	assert.Equal(t, boom, err)
}

func TestReadAt(t *testing.T) {
	data := []byte("NITF02.10 0123456789abcdefghij")
	size := int64(len(data))

	t.Run("interior", func(t *testing.T) {
		client := new(mockClient)
		obj := openTest(t, client, size)
		client.On("GetObject", mock.Anything, rangeMatcher(0, 8)).Return(rangeOutput(data, 0, 8), nil).Once()

		buf := make([]byte, 9)
		n, err := obj.ReadAt(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, 9, n)
		assert.Equal(t, "NITF02.10", string(buf))
		client.AssertExpectations(t)
	})

	t.Run("tail is short", func(t *testing.T) {
		client := new(mockClient)
		obj := openTest(t, client, size)
		client.On("GetObject", mock.Anything, rangeMatcher(size-4, size-1)).Return(rangeOutput(data, size-4, size-1), nil).Once()

		buf := make([]byte, 10)
		n, err := obj.ReadAt(buf, size-4)
		assert.Equal(t, io.EOF, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "ghij", string(buf[:n]))
	})

	t.Run("past end", func(t *testing.T) {
		client := new(mockClient)
		obj := openTest(t, client, size)

		n, err := obj.ReadAt(make([]byte, 4), size)
		assert.Equal(t, io.EOF, err)
		assert.Zero(t, n)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
	})

	t.Run("request error", func(t *testing.T) {
		client := new(mockClient)
		obj := openTest(t, client, size)
		boom := errors.New("throttled")
		client.On("GetObject", mock.Anything, mock.Anything).Return(nil, boom).Once()

		_, err := obj.ReadAt(make([]byte, 4), 0)
		assert.Equal(t, boom, err)
	})

	t.Run("short body", func(t *testing.T) {
		client := new(mockClient)
		obj := openTest(t, client, size)
		client.On("GetObject", mock.Anything, rangeMatcher(0, 7)).Return(rangeOutput(data, 0, 3), nil).Once()

		_, err := obj.ReadAt(make([]byte, 8), 0)
		assert.Equal(t, io.ErrUnexpectedEOF, err)
	})
}

func TestReadAt_Cancelled(t *testing.T) {
	client := new(mockClient)
	client.On("HeadObject", mock.Anything, mock.Anything).
		Return(&awss3.HeadObjectOutput{ContentLength: aws.Int64(10)}, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	obj, err := Open(ctx, client, "products", "collect.ntf")
	require.NoError(t, err)
	cancel()

	_, err = obj.ReadAt(make([]byte, 4), 0)
	assert.ErrorIs(t, err, context.Canceled)
	client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
}

func TestReadAt_RequestLimit(t *testing.T) {
	data := []byte("NITF02.10")
	client := new(mockClient)
	client.On("HeadObject", mock.Anything, mock.Anything).
		Return(&awss3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil).Once()
	client.On("GetObject", mock.Anything, rangeMatcher(0, 3)).Return(rangeOutput(data, 0, 3), nil).Once()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// One request per hour: the first read spends the burst, the second
	// cannot be admitted before the deadline.
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	obj, err := Open(ctx, client, "products", "collect.ntf", WithRequestLimit(limiter))
	require.NoError(t, err)

	_, err = obj.ReadAt(make([]byte, 4), 0)
	require.NoError(t, err)

	_, err = obj.ReadAt(make([]byte, 4), 0)
	assert.Error(t, err)
	client.AssertNumberOfCalls(t, "GetObject", 1)
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		url     string
		bucket  string
		key     string
		wantErr bool
	}{
		{url: "s3://products/collect.ntf", bucket: "products", key: "collect.ntf"},
		{url: "s3://products/2024/01/collect.ntf.zst", bucket: "products", key: "2024/01/collect.ntf.zst"},
		{url: "s3://products", wantErr: true},
		{url: "s3://products/", wantErr: true},
		{url: "/local/collect.ntf", wantErr: true},
	}

	for _, tt := range tests {
		bucket, key, err := ParseURL(tt.url)
		if tt.wantErr {
			assert.Error(t, err, tt.url)
			continue
		}
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.bucket, bucket)
		assert.Equal(t, tt.key, key)
	}
}
