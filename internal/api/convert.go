package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/altinukshini/gif-ascii-tui/internal/model"
)

// ConvertURL asks the backend to fetch and convert the GIF at gifURL.
func (c *Client) ConvertURL(ctx context.Context, gifURL string) (*model.ConversionResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("gif_url", gifURL); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, convertURLPath, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var res model.ConversionResult
	if err := c.do(req, ConvertFallback, &res); err != nil {
		return nil, fmt.Errorf("convert url: %w", err)
	}
	return &res, nil
}

// ConvertFile uploads the local file at path for conversion.
func (c *Client) ConvertFile(ctx context.Context, path string) (*model.ConversionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.ConvertUpload(ctx, filepath.Base(path), f)
}

// ConvertUpload uploads the contents of r under the given file name.
func (c *Client) ConvertUpload(ctx context.Context, name string, r io.Reader) (*model.ConversionResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", ContentTypeFor(name))
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, convertUploadPath, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var res model.ConversionResult
	if err := c.do(req, ConvertFallback, &res); err != nil {
		return nil, fmt.Errorf("convert upload %s: %w", name, err)
	}
	return &res, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// ContentTypeFor returns the MIME type sent for an uploaded file. The backend
// only accepts image/gif and image/webp.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
