package capture

import (
	"context"
	"errors"
	"log/slog"

	"geotodo/pkg/task"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrCancelled        = errors.New("capture cancelled")
)

type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

// Camera is the device photo capability. Capture returns ErrCancelled when
// the user backs out without taking a picture.
type Camera interface {
	RequestAccess(ctx context.Context) (bool, error)
	Capture(ctx context.Context) (*Photo, error)
}

// Locator is the device geolocation capability.
type Locator interface {
	RequestAccess(ctx context.Context) (bool, error)
	Current(ctx context.Context) (task.Location, error)
}

// Uploader trades captured image bytes for a durable URL.
type Uploader interface {
	UploadImage(ctx context.Context, name, contentType string, data []byte) (string, error)
}

type Alerter interface {
	Alert(title, message string)
}

// Pipeline is the sequential glue between device capabilities and the task
// synchronizer: capture a photo, upload it, resolve coordinates, hand both
// over as task attachments.
type Pipeline struct {
	camera  Camera
	locator Locator
	upload  Uploader
	alert   Alerter
	logger  *slog.Logger
}

func NewPipeline(camera Camera, locator Locator, upload Uploader, alert Alerter, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		camera:  camera,
		locator: locator,
		upload:  upload,
		alert:   alert,
		logger:  logger,
	}
}

// TakePhoto runs permission, capture and upload, returning the durable URL.
// A cancelled capture returns "" with no error.
func (p *Pipeline) TakePhoto(ctx context.Context) (string, error) {
	granted, err := p.camera.RequestAccess(ctx)
	if err != nil {
		p.logger.Error("camera permission", "error", err)
		return "", err
	}
	if !granted {
		p.alert.Alert("Permission required", "Camera access is needed to take photos.")
		return "", ErrPermissionDenied
	}

	photo, err := p.camera.Capture(ctx)
	if errors.Is(err, ErrCancelled) {
		return "", nil
	}
	if err != nil {
		p.logger.Error("capture", "error", err)
		p.alert.Alert("Error", "Could not take the photo.")
		return "", err
	}

	url, err := p.upload.UploadImage(ctx, photo.Name, photo.ContentType, photo.Data)
	if err != nil {
		p.logger.Error("image upload", "error", err)
		p.alert.Alert("Error", "Could not upload the photo.")
		return "", err
	}
	return url, nil
}

// Locate resolves the current coordinates.
func (p *Pipeline) Locate(ctx context.Context) (*task.Location, error) {
	granted, err := p.locator.RequestAccess(ctx)
	if err != nil {
		p.logger.Error("location permission", "error", err)
		return nil, err
	}
	if !granted {
		p.alert.Alert("Location required", "Location access is needed to tag tasks.")
		return nil, ErrPermissionDenied
	}

	loc, err := p.locator.Current(ctx)
	if err != nil {
		p.logger.Error("location lookup", "error", err)
		p.alert.Alert("Location error", "Could not resolve your current location.")
		return nil, err
	}
	return &loc, nil
}
