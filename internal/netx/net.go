// Package netx builds HTTP request bodies shared by the API client.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

// Part is one file in a multipart upload.
type Part struct {
	Name    string
	Content io.Reader
}

// ContentTypeFor guesses a part's content type from its file extension.
func ContentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// MultipartFiles encodes parts under a single form field, in order, and
// returns the body with its Content-Type header value.
func MultipartFiles(field string, parts []Part) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(field), quoteEscaper.Replace(filepath.Base(p.Name))))
		h.Set("Content-Type", ContentTypeFor(p.Name))

		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", p.Name, err)
		}
		if _, err := io.Copy(pw, p.Content); err != nil {
			return nil, "", fmt.Errorf("copy part %s: %w", p.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return body, w.FormDataContentType(), nil
}
