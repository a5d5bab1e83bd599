// Package whatsapp is the Cloud API client: it sends outbound messages
// built by pkg/outbound and exposes the handful of Graph endpoints the
// messaging flow needs.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"whatsapp-client/pkg/waerrors"
)

const (
	defaultBaseURL = "https://graph.facebook.com"
	defaultVersion = "v22.0"
)

// Config carries the client's credentials and optional overrides.
type Config struct {
	AccessToken   string
	PhoneNumberID string
	// Version is the Graph API version, "v22.0" unless set.
	Version string
	// BaseURL overrides the Graph endpoint, for tests.
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client talks to the WhatsApp Cloud API. It performs no retries: a failed
// call surfaces immediately as a *waerrors.Error.
type Client struct {
	accessToken   string
	phoneNumberID string
	version       string
	baseURL       string
	http          *http.Client
	log           zerolog.Logger
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.AccessToken == "" || cfg.PhoneNumberID == "" {
		return nil, waerrors.New("access token and phone number ID are required", 0)
	}

	c := &Client{
		accessToken:   cfg.AccessToken,
		phoneNumberID: cfg.PhoneNumberID,
		version:       cfg.Version,
		baseURL:       cfg.BaseURL,
		http:          cfg.HTTPClient,
		log:           zerolog.Nop(),
	}
	if c.version == "" {
		c.version = defaultVersion
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if cfg.Logger != nil {
		c.log = *cfg.Logger
	}
	return c, nil
}

// phoneURL builds a URL under the configured phone-number node.
func (c *Client) phoneURL(endpoint string) string {
	if endpoint == "" {
		return fmt.Sprintf("%s/%s/%s", c.baseURL, c.version, c.phoneNumberID)
	}
	return fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.version, c.phoneNumberID, endpoint)
}

// nodeURL builds a URL for an arbitrary Graph node such as a media ID.
func (c *Client) nodeURL(node string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.version, node)
}

// Request performs a JSON call against the API. A non-2xx response is
// translated from the platform's error envelope into a *waerrors.Error;
// any other failure is wrapped with code 0. When out is non-nil the
// response body is decoded into it.
func (c *Client) Request(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return waerrors.Wrap(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return waerrors.Wrap(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", method).Str("url", url).Msg("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		return waerrors.Wrap(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return waerrors.Wrap(err)
	}

	if resp.StatusCode >= 400 {
		apiErr := translateAPIError(respBody)
		c.log.Error().Int("status", resp.StatusCode).Int("code", apiErr.Code).Msg("api error")
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return waerrors.Wrap(err)
		}
	}
	return nil
}

// PhoneRequest performs a Request against an endpoint of the configured
// phone-number node.
func (c *Client) PhoneRequest(ctx context.Context, method, endpoint string, body, out any) error {
	return c.Request(ctx, method, c.phoneURL(endpoint), body, out)
}

type apiErrorEnvelope struct {
	Error *struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		ErrorData    struct {
			Details string `json:"details"`
		} `json:"error_data"`
		FbtraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

func translateAPIError(body []byte) *waerrors.Error {
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return waerrors.New("unknown error in the WhatsApp API", 0)
	}
	e := envelope.Error
	return waerrors.FromCode(e.Code, e.ErrorSubcode, e.ErrorData.Details, e.FbtraceID)
}
