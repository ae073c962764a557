package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfirm/firmdesk/internal/session"
)

func TestClient_UploadDocument(t *testing.T) {
	store := session.NewMemoryStore("tok", "ref")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/documents/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "4", r.FormValue("client"))
		assert.Equal(t, "9", r.FormValue("engagement"))
		assert.Equal(t, "FY24 bank statements", r.FormValue("description"))
		assert.Equal(t, "BANK_STATEMENT", r.FormValue("category"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() {
			_ = file.Close()
		}()
		assert.Equal(t, "statements.pdf", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "pdf-bytes", string(content))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":31,"client":4,"description":"FY24 bank statements","category":"BANK_STATEMENT"}`))
	}), store)

	engagement := 9
	doc, err := client.UploadDocument(context.Background(), UploadDocumentRequest{
		Client:      4,
		Engagement:  &engagement,
		Description: "FY24 bank statements",
		Category:    "BANK_STATEMENT",
		Filename:    "statements.pdf",
		File:        strings.NewReader("pdf-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, 31, doc.ID)
}

func TestClient_UploadDocument_ReplayAfterRefresh(t *testing.T) {
	store := session.NewMemoryStore("stale", "ref-1")

	uploads := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token/refresh/" {
			_, _ = w.Write([]byte(`{"access":"fresh"}`))
			return
		}
		if bearer(r) != "fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		// The replayed multipart body must still parse whole.
		uploads++
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "pdf-bytes", string(content))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"client":4}`))
	}), store)

	_, err := client.UploadDocument(context.Background(), UploadDocumentRequest{
		Client:      4,
		Description: "workpaper",
		Filename:    "wp.pdf",
		File:        strings.NewReader("pdf-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, uploads)
}

func TestClient_UploadDocument_RequiresFile(t *testing.T) {
	store := session.NewMemoryStore("tok", "ref")
	client := newTestClient(t, http.NewServeMux(), store)

	_, err := client.UploadDocument(context.Background(), UploadDocumentRequest{Client: 4})
	assert.Error(t, err)
}
