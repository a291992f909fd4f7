package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"mealshare/internal/content/models"
)

// UploadFieldName is the multipart field the API reads uploads from.
const UploadFieldName = "file"

// Upload is a file forwarded to an upload endpoint.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func (c *Client) GetHero(ctx context.Context) (models.Hero, error) {
	var hero models.Hero
	err := c.do(ctx, request{operation: "hero.get", method: http.MethodGet, path: "/api/hero"}, &hero)
	return hero, err
}

func (c *Client) UpdateHero(ctx context.Context, in models.HeroInput) (models.Hero, error) {
	var hero models.Hero
	req, err := jsonRequest("hero.update", http.MethodPut, "/api/hero", in)
	if err != nil {
		return hero, err
	}
	err = c.do(ctx, req, &hero)
	return hero, err
}

// UploadHeroImage replaces the hero background and returns the updated hero.
func (c *Client) UploadHeroImage(ctx context.Context, file Upload) (models.Hero, error) {
	var hero models.Hero
	req, err := multipartRequest("hero.upload", "/api/hero/upload-image", file)
	if err != nil {
		return hero, err
	}
	err = c.do(ctx, req, &hero)
	return hero, err
}

// List decodes every item of col into out, which must be a pointer to a slice.
func (c *Client) List(ctx context.Context, col models.Collection, out any) error {
	return c.do(ctx, request{
		operation: string(col) + ".list",
		method:    http.MethodGet,
		path:      collectionPath(col),
	}, out)
}

func (c *Client) Get(ctx context.Context, col models.Collection, id string, out any) error {
	return c.do(ctx, request{
		operation: string(col) + ".get",
		method:    http.MethodGet,
		path:      itemPath(col, id),
	}, out)
}

func (c *Client) Create(ctx context.Context, col models.Collection, in, out any) error {
	req, err := jsonRequest(string(col)+".create", http.MethodPost, collectionPath(col), in)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

func (c *Client) Update(ctx context.Context, col models.Collection, id string, in, out any) error {
	req, err := jsonRequest(string(col)+".update", http.MethodPut, itemPath(col, id), in)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

func (c *Client) Delete(ctx context.Context, col models.Collection, id string) error {
	return c.do(ctx, request{
		operation: string(col) + ".delete",
		method:    http.MethodDelete,
		path:      itemPath(col, id),
	}, nil)
}

// Upload sends file to the item's image or icon endpoint and decodes the updated item.
func (c *Client) Upload(ctx context.Context, col models.Collection, id string, file Upload, out any) error {
	req, err := multipartRequest(string(col)+".upload", itemPath(col, id)+"/"+col.UploadPath(), file)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

func collectionPath(col models.Collection) string {
	return "/api/" + string(col)
}

func itemPath(col models.Collection, id string) string {
	return collectionPath(col) + "/" + url.PathEscape(id)
}

func multipartRequest(operation, path string, file Upload) (request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, UploadFieldName, escapeQuotes(file.Filename)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return request{}, fmt.Errorf("%s: create part: %w", operation, err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return request{}, fmt.Errorf("%s: copy upload: %w", operation, err)
	}
	if err := mw.Close(); err != nil {
		return request{}, fmt.Errorf("%s: close multipart: %w", operation, err)
	}
	return request{
		operation:   operation,
		method:      http.MethodPost,
		path:        path,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
