package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"residency-server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PhotoStore saves an image and returns the public URL it is served from.
type PhotoStore interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
}

var Photos PhotoStore = NewMemoryPhotoStore()

func InitializePhotos(ctx context.Context, cfg config.Config) {
	if cfg.PhotoBucket == "" {
		log.Println("PHOTO_S3_BUCKET not set, unit photos are kept in memory")
		Photos = NewMemoryPhotoStore()
		return
	}

	store, err := NewS3PhotoStore(ctx, cfg)
	if err != nil {
		log.Panic("error configuring photo bucket: " + err.Error())
	}
	Photos = store
}

// DecodeBase64Image accepts raw base64 or a data URI.
func DecodeBase64Image(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("empty image")
	}
	payload := src
	if i := strings.Index(src, ","); i != -1 {
		payload = src[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, fmt.Errorf("payload is not an image")
	}
	return data, nil
}

type s3PhotoStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3PhotoStore(ctx context.Context, cfg config.Config) (PhotoStore, error) {
	region := cfg.PhotoRegion
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PhotoPathStyle
		if cfg.PhotoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.PhotoEndpoint)
		}
	})

	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.PhotoBucket, region)
	if cfg.PhotoEndpoint != "" {
		baseURL = strings.TrimRight(cfg.PhotoEndpoint, "/") + "/" + cfg.PhotoBucket
	}

	return &s3PhotoStore{client: client, bucket: cfg.PhotoBucket, baseURL: baseURL}, nil
}

func (s *s3PhotoStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

type memoryPhotoStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryPhotoStore() PhotoStore {
	return &memoryPhotoStore{objects: make(map[string][]byte)}
}

func (s *memoryPhotoStore) Save(_ context.Context, key string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "memory://photos/" + key, nil
}
