package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"whatsapp-client/pkg/waerrors"
)

// MediaUploadResult carries the media ID assigned to an upload. The ID can
// then be used in outbound file attachments instead of a public URL.
type MediaUploadResult struct {
	ID string `json:"id"`
}

// UploadMedia uploads raw media bytes to the phone number's media node.
func (c *Client) UploadMedia(ctx context.Context, data []byte, mimeType, filename string) (*MediaUploadResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, waerrors.Wrap(err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, waerrors.Wrap(err)
	}
	if err := writer.WriteField("messaging_product", "whatsapp"); err != nil {
		return nil, waerrors.Wrap(err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.phoneURL("media"), body)
	if err != nil {
		return nil, waerrors.Wrap(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, waerrors.Wrap(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, waerrors.Wrap(err)
	}
	if resp.StatusCode >= 400 {
		return nil, translateAPIError(respBody)
	}

	var result MediaUploadResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, waerrors.Wrap(err)
	}
	return &result, nil
}

// RetrieveMediaURL resolves a media ID to its short-lived download URL.
// Downloading the bytes requires a second, authorized request to that URL.
func (c *Client) RetrieveMediaURL(ctx context.Context, mediaID string) (string, error) {
	var obj struct {
		URL string `json:"url"`
	}
	if err := c.Request(ctx, http.MethodGet, c.nodeURL(mediaID), nil, &obj); err != nil {
		return "", err
	}
	return obj.URL, nil
}

// DeleteMedia removes an uploaded media object.
func (c *Client) DeleteMedia(ctx context.Context, mediaID string) error {
	return c.Request(ctx, http.MethodDelete, c.nodeURL(mediaID), nil, nil)
}
