package api

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/42tr/venus/client/internal/types"
)

const (
	// defaultUploadName matches what browsers send for an unnamed Blob; a
	// part without a filename would be read as a plain form value.
	defaultUploadName = "blob"
	defaultUploadType = "application/octet-stream"
)

// UploadImage sends up as multipart form data: an "image" file part and,
// only when up.ProjectID is set, a "project_id" field.
func UploadImage(ctx context.Context, rc *resty.Client, up types.ImageUpload) (*types.Image, error) {
	const op = "upload image"
	if up.Content == nil {
		return nil, fmt.Errorf("%s: no content", op)
	}
	r, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	name := up.Filename
	if name == "" {
		name = defaultUploadName
	}
	ctype := up.ContentType
	if ctype == "" {
		ctype = defaultUploadType
	}
	r.SetMultipartField("image", name, ctype, up.Content)
	if up.ProjectID != "" {
		r.SetMultipartFormData(map[string]string{"project_id": up.ProjectID})
	}
	resp, err := r.Post("/images")
	if err := finish(op, resp, err); err != nil {
		return nil, err
	}
	var img types.Image
	if err := decode(op, resp, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// ImageURL builds the direct URL of an image. It performs no I/O and uses
// id verbatim; image IDs issued by the backend are UUIDs.
func ImageURL(imageBaseURL, id string) string {
	return fmt.Sprintf("%s/api/images/%s", imageBaseURL, id)
}

// ListImages returns the caller's image metadata, newest first as sent by
// the backend.
func ListImages(ctx context.Context, rc *resty.Client) ([]types.Image, error) {
	const op = "list images"
	r, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	resp, err := r.Get("/images")
	if err := finish(op, resp, err); err != nil {
		return nil, err
	}
	var out []types.Image
	if err := decode(op, resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteImage removes an image. Backend returns 204 No Content on success.
func DeleteImage(ctx context.Context, rc *resty.Client, id string) error {
	const op = "delete image"
	r, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	resp, err := r.Delete("/images/" + segment(id))
	return finish(op, resp, err)
}
