package netx

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentTypeFor(t *testing.T) {
	require.Equal(t, "image/jpeg", ContentTypeFor("a.JPG"))
	require.Equal(t, "image/png", ContentTypeFor("dir/b.png"))
	require.Equal(t, "application/octet-stream", ContentTypeFor("noext"))
}

func TestMultipartFiles_EncodesPartsInOrder(t *testing.T) {
	body, ct, err := MultipartFiles("photos", []Part{
		{Name: "/tmp/a.jpg", Content: strings.NewReader("AAA")},
		{Name: "b.png", Content: strings.NewReader("BB")},
	})
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(ct)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(body, params["boundary"])

	var names, contents, types []string
	for {
		p, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		require.Equal(t, "photos", p.FormName())
		b, err := io.ReadAll(p)
		require.NoError(t, err)
		names = append(names, p.FileName())
		contents = append(contents, string(b))
		types = append(types, p.Header.Get("Content-Type"))
	}

	require.Equal(t, []string{"a.jpg", "b.png"}, names)
	require.Equal(t, []string{"AAA", "BB"}, contents)
	require.Equal(t, []string{"image/jpeg", "image/png"}, types)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestMultipartFiles_PropagatesReadError(t *testing.T) {
	_, _, err := MultipartFiles("photos", []Part{{Name: "a.jpg", Content: failingReader{}}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "copy part a.jpg")
}
