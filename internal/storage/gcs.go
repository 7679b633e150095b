package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

type GCSStorage struct {
	client   *storage.Client
	bucket   string
	audioDir string
}

func NewGCSStorage(ctx context.Context, bucket, audioDir string) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:   client,
		bucket:   bucket,
		audioDir: audioDir,
	}, nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

// UploadAudio writes the episode audio under the configured prefix and
// returns its gs:// path.
func (s *GCSStorage) UploadAudio(ctx context.Context, name string, data []byte) (string, error) {
	objectName := path.Join(s.audioDir, name)

	obj := s.client.Bucket(s.bucket).Object(objectName)
	w := obj.NewWriter(ctx)
	w.ContentType = "audio/mpeg"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, objectName), nil
}

// ListEpisodes returns the names of uploaded episode audio files.
func (s *GCSStorage) ListEpisodes(ctx context.Context) ([]string, error) {
	bkt := s.client.Bucket(s.bucket)
	query := &storage.Query{Prefix: s.audioDir}

	var episodes []string
	it := bkt.Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		if strings.HasSuffix(attrs.Name, ".mp3") {
			episodes = append(episodes, attrs.Name)
		}
	}

	return episodes, nil
}
