package authsdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SDKClient is a client for the userbackend API. It keeps the session cookie
// in its own jar, so each SDKClient acts as a separate browser.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with an empty cookie jar.
func NewSDKClient(baseURL string) *SDKClient {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// SessionCookie returns the session cookie currently held for the API, or
// nil.
func (c *SDKClient) SessionCookie(name string) *http.Cookie {
	if c.HTTPClient.Jar == nil {
		return nil
	}
	req, err := http.NewRequest(http.MethodGet, c.url("/"), nil)
	if err != nil {
		return nil
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(req.URL) {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
