package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

var avatarContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// ObjectPutter is the part of the S3 API used for avatars.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options locate the avatar bucket.
type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicBaseURL prefixes object keys to form the stored avatar URL.
	// Empty means <Endpoint>/<Bucket>.
	PublicBaseURL string
}

// NewS3Client builds a path-style S3 client for an S3-compatible endpoint.
func NewS3Client(ctx context.Context, o S3Options) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(opts *s3.Options) {
		if o.Endpoint != "" {
			opts.BaseEndpoint = aws.String(o.Endpoint)
		}
		opts.UsePathStyle = true
	}), nil
}

// AvatarService stores profile pictures and links them to the profile.
type AvatarService interface {
	Upload(ctx context.Context, filename string, body io.Reader, size int64) (models.Profile, error)
}

type avatarService struct {
	objects  ObjectPutter
	fitness  FitnessService
	sessions SessionSource
	opts     S3Options
}

func NewAvatarService(objects ObjectPutter, fitness FitnessService, sessions SessionSource, opts S3Options) AvatarService {
	return &avatarService{objects: objects, fitness: fitness, sessions: sessions, opts: opts}
}

func avatarKey(userID, filename string) (string, string, error) {
	ext := strings.ToLower(path.Ext(filename))
	ct, ok := avatarContentTypes[ext]
	if !ok {
		return "", "", &models.ValidationError{Field: "avatar", Reason: "unsupported image type " + ext}
	}
	return fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext), ct, nil
}

func (a *avatarService) publicURL(key string) string {
	base := a.opts.PublicBaseURL
	if base == "" {
		base = strings.TrimRight(a.opts.Endpoint, "/") + "/" + a.opts.Bucket
	}
	return strings.TrimRight(base, "/") + "/" + key
}

func (a *avatarService) Upload(ctx context.Context, filename string, body io.Reader, size int64) (models.Profile, error) {
	sess, ok := a.sessions.Current()
	if !ok {
		return models.Profile{}, common.ErrNotAuthenticated
	}
	if size <= 0 {
		return models.Profile{}, &models.ValidationError{Field: "avatar", Reason: "empty file"}
	}

	key, contentType, err := avatarKey(sess.UserID, filename)
	if err != nil {
		return models.Profile{}, err
	}

	_, err = a.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.opts.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return models.Profile{}, fmt.Errorf("upload avatar: %w", err)
	}

	url := a.publicURL(key)
	return a.fitness.UpdateProfile(ctx, models.ProfilePatch{AvatarURL: &url})
}
