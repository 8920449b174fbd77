package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"webstories/config"
	"webstories/types"
)

// ErrStoryNotFound is returned when no snapshot exists for a story id.
var ErrStoryNotFound = errors.New("story not found")

// ObjectAPI is the subset of the S3 client the store relies on.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// NewS3Client creates an S3 client from the default AWS configuration chain
// with optional region and profile overrides.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// StoryStore keeps story JSON snapshots and media under a bucket prefix.
type StoryStore struct {
	api    ObjectAPI
	bucket string
	prefix string
}

func NewStoryStore(api ObjectAPI, bucket, prefix string) *StoryStore {
	return &StoryStore{api: api, bucket: bucket, prefix: prefix}
}

func (s *StoryStore) storyKey(id string) string {
	return s.prefix + "stories/" + id + ".json"
}

// Save writes the snapshot of story, replacing any previous one.
func (s *StoryStore) Save(ctx context.Context, story *types.Story) error {
	if story == nil || story.ID == "" {
		return errors.New("story id is required")
	}
	data, err := json.Marshal(story)
	if err != nil {
		return fmt.Errorf("failed to encode story %s: %w", story.ID, err)
	}
	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.storyKey(story.ID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to save story %s: %w", story.ID, err)
	}
	return nil
}

// Load reads the snapshot of id.
func (s *StoryStore) Load(ctx context.Context, id string) (*types.Story, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.storyKey(id)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrStoryNotFound, id)
		}
		return nil, fmt.Errorf("failed to load story %s: %w", id, err)
	}
	defer out.Body.Close()

	var story types.Story
	if err := json.NewDecoder(out.Body).Decode(&story); err != nil {
		return nil, fmt.Errorf("failed to decode story %s: %w", id, err)
	}
	return &story, nil
}

// Exists returns true if a snapshot exists for id.
func (s *StoryStore) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.storyKey(id)),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat story %s: %w", id, err)
}

// Delete removes the snapshot of id. Deleting a missing story is not an error.
func (s *StoryStore) Delete(ctx context.Context, id string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.storyKey(id)),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete story %s: %w", id, err)
	}
	return nil
}

// List returns the ids of every stored story, following pagination.
func (s *StoryStore) List(ctx context.Context) ([]string, error) {
	prefix := s.prefix + "stories/"
	var (
		ids   []string
		token *string
	)
	for {
		out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			MaxKeys:           aws.Int32(1000),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list stories: %w", err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, ".json") {
				continue
			}
			ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(key, prefix), ".json"))
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			return ids, nil
		}
		token = out.NextContinuationToken
	}
}

// PutMedia uploads a media file under <prefix>media/ and returns its key.
func (s *StoryStore) PutMedia(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	key := s.prefix + "media/" + path.Base(name)
	in := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         body,
		CacheControl: aws.String("public, max-age=31536000"),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return key, nil
}

// isNotFound recognises both the HTTP 404 and the NotFound/NoSuchKey API codes.
func isNotFound(err error) bool {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
