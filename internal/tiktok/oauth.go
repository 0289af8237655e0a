package tiktok

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

// Scopes requested at login
var Scopes = []string{"user.info.basic", "video.publish"}

func (c *Client) oauthConfig(clientKey, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientKey,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.authURL,
			TokenURL:  c.baseURL + "/oauth/token/",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthCodeURL builds the authorize redirect. TikTok wants client_key and comma separated scopes.
func (c *Client) AuthCodeURL(clientKey, redirectURI, state string) string {
	conf := c.oauthConfig(clientKey, "", redirectURI)
	conf.Scopes = nil
	return conf.AuthCodeURL(state,
		oauth2.SetAuthURLParam("client_key", clientKey),
		oauth2.SetAuthURLParam("scope", strings.Join(Scopes, ",")),
	)
}

// ExchangeAuthCode trades an authorization code for an access token
func (c *Client) ExchangeAuthCode(ctx context.Context, clientKey, clientSecret, code, redirectURI string) (string, error) {
	conf := c.oauthConfig(clientKey, clientSecret, redirectURI)
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := conf.Exchange(ctx, code, oauth2.SetAuthURLParam("client_key", clientKey))
	if err != nil {
		return "", fmt.Errorf("failed to exchange auth code: %w", err)
	}

	return token.AccessToken, nil
}

