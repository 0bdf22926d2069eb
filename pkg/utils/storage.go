package utils

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func PutObjectS3(s3Cli *s3.Client, ctx context.Context, bucket string, key string, body io.Reader, contentType string) error {

	_, err := s3Cli.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return err
	}

	return nil

}

func DeleteObjectS3(s3Cli *s3.Client, ctx context.Context, bucket string, key string) error {

	_, err := s3Cli.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return err
	}

	return nil

}
