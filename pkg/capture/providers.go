package capture

import (
	"context"
	"mime"
	"os"
	"path/filepath"

	"geotodo/pkg/task"
)

// FileCamera maps the camera capability onto a workstation: "capturing"
// reads an image file from a preconfigured path. An empty path means the
// user skipped taking a photo.
type FileCamera struct {
	Path string
}

func (c *FileCamera) RequestAccess(ctx context.Context) (bool, error) {
	return true, nil
}

func (c *FileCamera) Capture(ctx context.Context) (*Photo, error) {
	if c.Path == "" {
		return nil, ErrCancelled
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(c.Path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Photo{
		Name:        filepath.Base(c.Path),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// FixedLocator reports preconfigured coordinates.
type FixedLocator struct {
	Location task.Location
	Granted  bool
}

func (l *FixedLocator) RequestAccess(ctx context.Context) (bool, error) {
	return l.Granted, nil
}

func (l *FixedLocator) Current(ctx context.Context) (task.Location, error) {
	return l.Location, nil
}
