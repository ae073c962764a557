package api

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// ListPBCRequests fetches the document requests visible to the logged-in
// portal user (scoped server-side through their client contact record).
func (c *Client) ListPBCRequests(ctx context.Context) ([]model.PBCRequest, error) {
	var requests []model.PBCRequest
	if err := c.get(ctx, "portal/", nil, &requests); err != nil {
		return nil, fmt.Errorf("failed to list document requests: %w", err)
	}
	return requests, nil
}

// FulfillPBCRequest uploads the requested file; the backend marks the request
// SUBMITTED on success.
func (c *Client) FulfillPBCRequest(ctx context.Context, id int, filename string, file io.Reader) (*ActionResult, error) {
	if filename == "" || file == nil {
		return nil, fmt.Errorf("upload requires a file")
	}

	contentType, body, err := encodeMultipart(nil, "file", filename, file)
	if err != nil {
		return nil, err
	}

	var result ActionResult
	if err := c.postMultipart(ctx, "portal/"+strconv.Itoa(id)+"/upload/", contentType, body, &result); err != nil {
		return nil, fmt.Errorf("failed to upload to request %d: %w", id, err)
	}
	return &result, nil
}
