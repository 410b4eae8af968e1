package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/windoze95/cardapio-api/internal/config"
)

// newS3Client creates a new S3 client from the app config.
// When AWS access key and secret are provided, static credentials are used;
// otherwise the default credential chain is preserved (IAM role, instance
// profile, etc.) so ECS/EC2 task roles work without explicit keys.
func newS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.EnvVars.AWSRegion),
	}

	if cfg.EnvVars.AWSAccessKeyID != "" && cfg.EnvVars.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.EnvVars.AWSAccessKeyID,
			cfg.EnvVars.AWSSecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// DownloadMenuFromS3 fetches the menu document stored at MENU_S3_KEY.
func DownloadMenuFromS3(ctx context.Context, cfg *config.Config) ([]byte, error) {
	client, err := newS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}

	downloader := manager.NewDownloader(client)
	buf := manager.NewWriteAtBuffer(nil)

	_, err = downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(cfg.EnvVars.S3Bucket),
		Key:    aws.String(cfg.EnvVars.MenuS3Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s from S3: %w", MenuURI(cfg), err)
	}

	return buf.Bytes(), nil
}

// UploadMenuToS3 publishes a menu document to MENU_S3_KEY and returns the location URL.
func UploadMenuToS3(ctx context.Context, cfg *config.Config, data []byte) (string, error) {
	client, err := newS3Client(ctx, cfg)
	if err != nil {
		return "", err
	}

	uploader := manager.NewUploader(client)

	result, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.EnvVars.S3Bucket),
		Key:         aws.String(cfg.EnvVars.MenuS3Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/yaml"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to S3: %w", MenuURI(cfg), err)
	}

	return result.Location, nil
}

// MenuURI renders the configured menu object as an s3:// URI.
func MenuURI(cfg *config.Config) string {
	return fmt.Sprintf("s3://%s/%s", cfg.EnvVars.S3Bucket, cfg.EnvVars.MenuS3Key)
}
