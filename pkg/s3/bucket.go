package bucket

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// Bucket stores station images in one S3 bucket.
type Bucket struct {
	S3Client s3iface.S3API
	Name     string
}

func NewBucket(accessKeyID, secretAccessKey, region, name string) (*Bucket, error) {
	if accessKeyID == "" || secretAccessKey == "" || region == "" || name == "" {
		return nil, fmt.Errorf("AWS credentials, region or bucket are not set")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKeyID, secretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %v", err)
	}

	return &Bucket{S3Client: s3.New(sess), Name: name}, nil
}

// UploadFile stores fileBytes under fileName and returns its public URL.
func (b *Bucket) UploadFile(ctx context.Context, fileBytes []byte, fileName, contentType string) (string, error) {
	_, err := b.S3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.Name),
		Key:           aws.String(fileName),
		Body:          bytes.NewReader(fileBytes),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", b.Name, fileName), nil
}

func (b *Bucket) DeleteFile(ctx context.Context, key string) error {
	_, err := b.S3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.Name),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}
