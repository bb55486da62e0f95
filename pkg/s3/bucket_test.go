package bucket

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	puts    []*s3.PutObjectInput
	body    []byte
	deleted []string
	err     error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, f.err
}

func TestBucket_UploadFile(t *testing.T) {
	fake := &fakeS3{}
	b := &Bucket{S3Client: fake, Name: "postos-imagens"}

	url, err := b.UploadFile(context.Background(), []byte("png-bytes"), "postos/abc.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://postos-imagens.s3.amazonaws.com/postos/abc.png", url)

	require.Len(t, fake.puts, 1)
	assert.Equal(t, "postos-imagens", aws.StringValue(fake.puts[0].Bucket))
	assert.Equal(t, "image/png", aws.StringValue(fake.puts[0].ContentType))
	assert.Equal(t, int64(9), aws.Int64Value(fake.puts[0].ContentLength))
	assert.Equal(t, []byte("png-bytes"), fake.body)
}

func TestBucket_Errors(t *testing.T) {
	boom := errors.New("access denied")
	b := &Bucket{S3Client: &fakeS3{err: boom}, Name: "postos-imagens"}

	_, err := b.UploadFile(context.Background(), nil, "x.png", "image/png")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, b.DeleteFile(context.Background(), "x.png"), boom)
}

func TestNewBucketRequiresSettings(t *testing.T) {
	_, err := NewBucket("", "", "", "")
	assert.Error(t, err)

	b, err := NewBucket("AKIA", "secret", "sa-east-1", "postos-imagens")
	require.NoError(t, err)
	assert.Equal(t, "postos-imagens", b.Name)
}
