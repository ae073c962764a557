package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// UploadDocumentRequest describes a multipart document upload. File is read
// fully into the request body; callers can wrap it to report progress.
type UploadDocumentRequest struct {
	Client      int
	Engagement  *int
	Description string
	Category    string
	Filename    string
	File        io.Reader
}

// ListDocuments fetches documents, filtered by client and/or engagement.
func (c *Client) ListDocuments(ctx context.Context, clientID, engagementID int) ([]model.Document, error) {
	query := url.Values{}
	if clientID > 0 {
		query.Set("client", strconv.Itoa(clientID))
	}
	if engagementID > 0 {
		query.Set("engagement", strconv.Itoa(engagementID))
	}

	var docs []model.Document
	if err := c.get(ctx, "documents/", query, &docs); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// UploadDocument submits a document as multipart form data.
func (c *Client) UploadDocument(ctx context.Context, req UploadDocumentRequest) (*model.Document, error) {
	if req.Client <= 0 {
		return nil, fmt.Errorf("upload requires a client id")
	}
	if req.Filename == "" || req.File == nil {
		return nil, fmt.Errorf("upload requires a file")
	}

	fields := map[string]string{
		"client":      strconv.Itoa(req.Client),
		"description": req.Description,
	}
	if req.Category != "" {
		fields["category"] = req.Category
	}
	if req.Engagement != nil {
		fields["engagement"] = strconv.Itoa(*req.Engagement)
	}

	contentType, body, err := encodeMultipart(fields, "file", req.Filename, req.File)
	if err != nil {
		return nil, err
	}

	var doc model.Document
	if err := c.postMultipart(ctx, "documents/", contentType, body, &doc); err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}
	return &doc, nil
}

// VerifyDocument marks a document as verified by the audit team.
func (c *Client) VerifyDocument(ctx context.Context, id int) error {
	body := map[string]any{"is_verified": true}
	if err := c.patch(ctx, "documents/"+strconv.Itoa(id)+"/", body, nil); err != nil {
		return fmt.Errorf("failed to verify document %d: %w", id, err)
	}
	return nil
}

// DeleteDocument removes a document record and its stored file.
func (c *Client) DeleteDocument(ctx context.Context, id int) error {
	if err := c.delete(ctx, "documents/"+strconv.Itoa(id)+"/"); err != nil {
		return fmt.Errorf("failed to delete document %d: %w", id, err)
	}
	return nil
}

// encodeMultipart builds a multipart form body with one file part. The body
// is materialized as bytes so the 401-refresh replay can resend it intact.
func encodeMultipart(fields map[string]string, fileField, filename string, file io.Reader) (string, []byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return "", nil, fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	return writer.FormDataContentType(), buf.Bytes(), nil
}
