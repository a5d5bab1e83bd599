package whatsapp

import (
	"context"
	"net/http"
)

// BusinessProfile is the business metadata attached to the phone number.
type BusinessProfile struct {
	About             string   `json:"about,omitempty"`
	Address           string   `json:"address,omitempty"`
	Description       string   `json:"description,omitempty"`
	Email             string   `json:"email,omitempty"`
	ProfilePictureURL string   `json:"profile_picture_url,omitempty"`
	Websites          []string `json:"websites,omitempty"`
	Vertical          string   `json:"vertical,omitempty"`
}

type businessProfileEnvelope struct {
	Data []BusinessProfile `json:"data"`
}

// GetBusinessProfile fetches the business profile for the configured phone
// number.
func (c *Client) GetBusinessProfile(ctx context.Context) (*BusinessProfile, error) {
	endpoint := "whatsapp_business_profile?fields=about,address,description,email,profile_picture_url,websites,vertical"

	var envelope businessProfileEnvelope
	if err := c.PhoneRequest(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Data) == 0 {
		return &BusinessProfile{}, nil
	}
	return &envelope.Data[0], nil
}
