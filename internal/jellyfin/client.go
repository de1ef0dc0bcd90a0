// Package jellyfin serves a Jellyfin photo library as a photos.Source.
package jellyfin

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jellyfin "github.com/sj14/jellyfin-go/api"
)

const (
	clientName    = "PhotoStrip"
	clientVersion = "0.1.0"
	deviceName    = "PhotoStrip Desktop"
	deviceID      = "photostrip-1"
)

// DefaultThumbHeight is the image height requested when ThumbHeight is unset.
const DefaultThumbHeight = 300

// Client wraps the generated Jellyfin API client.
type Client struct {
	api       *jellyfin.APIClient
	token     string
	userID    string
	serverURL string

	// ThumbHeight is the maxHeight asked of the server for strip images.
	ThumbHeight int
}

func normalizeURL(serverURL string) string {
	serverURL = strings.TrimSpace(serverURL)
	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		serverURL = "https://" + serverURL
	}
	return strings.TrimRight(serverURL, "/")
}

func NewClient(serverURL string) *Client {
	serverURL = normalizeURL(serverURL)
	cfg := jellyfin.NewConfiguration()
	cfg.Servers = jellyfin.ServerConfigurations{
		{URL: serverURL},
	}
	cfg.AddDefaultHeader("X-Emby-Authorization",
		fmt.Sprintf(`MediaBrowser Client="%s", Device="%s", DeviceId="%s", Version="%s"`,
			clientName, deviceName, deviceID, clientVersion))

	return &Client{
		api:         jellyfin.NewAPIClient(cfg),
		serverURL:   serverURL,
		ThumbHeight: DefaultThumbHeight,
	}
}

func (c *Client) Authenticate(ctx context.Context, username, password string) error {
	body := *jellyfin.NewAuthenticateUserByName()
	body.SetUsername(username)
	body.SetPw(password)

	result, resp, err := c.api.UserAPI.AuthenticateUserByName(ctx).AuthenticateUserByName(body).Execute()
	if err != nil {
		return fmt.Errorf("auth failed: %w (status: %s)", err, respStatus(resp))
	}
	user := result.GetUser()
	c.SetToken(result.GetAccessToken(), user.GetId())
	return nil
}

// SetToken installs a saved session so Authenticate can be skipped.
func (c *Client) SetToken(token, userID string) {
	c.token = token
	c.userID = userID
	c.api.GetConfig().AddDefaultHeader("X-Emby-Token", c.token)
}

func (c *Client) Token() string     { return c.token }
func (c *Client) UserID() string    { return c.userID }
func (c *Client) ServerURL() string { return c.serverURL }

// AuthHeader is the header the image cache sends along with image requests.
func (c *Client) AuthHeader() (name, value string) {
	return "X-Emby-Token", c.token
}

func respStatus(resp *http.Response) string {
	if resp == nil {
		return "no response"
	}
	return resp.Status
}
