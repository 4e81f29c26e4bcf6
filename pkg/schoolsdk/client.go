package schoolsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the school service. It covers unauthenticated
// endpoints and creates Sessions for everything else.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session carries a bearer token obtained from the auth provider.
// Sessions are immutable and safe for concurrent use.
type Session struct {
	client      *SDKClient
	accessToken string
}

// NewSession returns a Session authenticating with accessToken.
func (c *SDKClient) NewSession(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}
