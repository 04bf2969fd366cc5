// Package social resolves a verified email address from a third-party
// login callback. Only the email-extraction contract is implemented;
// the provider set is closed and dispatched exhaustively.
package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/authgrid/auth-service/internal/infrastructure/config"
)

// Provider identifies a supported social login provider.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderYandex Provider = "yandex"
)

var ErrUnknownProvider = errors.New("unknown social provider")

var yandexEndpoint = oauth2.Endpoint{
	AuthURL:  "https://oauth.yandex.com/authorize",
	TokenURL: "https://oauth.yandex.com/token",
}

// providerConfig carries the per-provider endpoint configuration: the
// oauth2 exchange config plus where and under which field the userinfo
// endpoint reports the email.
type providerConfig struct {
	oauth       *oauth2.Config
	userinfoURL string
	emailField  string
}

// Resolver exchanges callback codes for emails.
type Resolver struct {
	providers map[Provider]providerConfig
}

func NewResolver(cfg config.SocialConfig, redirectBase string) *Resolver {
	return &Resolver{providers: map[Provider]providerConfig{
		ProviderGoogle: {
			oauth: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				RedirectURL:  redirectBase + "/auth/login/google",
				Scopes:       []string{"openid", "email"},
			},
			userinfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
			emailField:  "email",
		},
		ProviderYandex: {
			oauth: &oauth2.Config{
				ClientID:     cfg.YandexClientID,
				ClientSecret: cfg.YandexClientSecret,
				Endpoint:     yandexEndpoint,
				RedirectURL:  redirectBase + "/auth/login/yandex",
			},
			userinfoURL: "https://login.yandex.ru/info?format=json",
			emailField:  "default_email",
		},
	}}
}

// AuthURL returns the provider's consent-page URL for the given state.
func (r *Resolver) AuthURL(provider Provider, state string) (string, error) {
	pc, ok := r.providers[provider]
	if !ok {
		return "", ErrUnknownProvider
	}
	return pc.oauth.AuthCodeURL(state), nil
}

// ResolveEmail exchanges the callback code and extracts the account
// email from the provider's userinfo endpoint.
func (r *Resolver) ResolveEmail(ctx context.Context, provider Provider, code string) (string, error) {
	pc, ok := r.providers[provider]
	if !ok {
		return "", ErrUnknownProvider
	}

	token, err := pc.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%s code exchange: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pc.userinfoURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := pc.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return "", fmt.Errorf("%s userinfo: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s userinfo: unexpected status %d", provider, resp.StatusCode)
	}

	var info map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("%s userinfo decode: %w", provider, err)
	}

	email, _ := info[pc.emailField].(string)
	if email == "" {
		return "", fmt.Errorf("%s userinfo: no email in response", provider)
	}
	return email, nil
}
