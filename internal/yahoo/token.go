package yahoo

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// OAuthConfig holds the Yahoo application credentials and the token file
// location.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
}

const (
	authURL     = "https://api.login.yahoo.com/oauth2/request_auth"
	tokenURL    = "https://api.login.yahoo.com/oauth2/get_token"
	redirectURL = "https://developers.google.com/oauthplayground"
)

func (c OAuthConfig) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"fspt-r"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}
}

// LoadToken reads a saved OAuth token from disk.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

// SaveToken writes an OAuth token to disk with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Authenticate runs the interactive authorization-code flow: prints the
// authorization URL, reads the code from stdin and exchanges it, saving
// the resulting token to cfg.TokenFile.
func Authenticate(ctx context.Context, cfg OAuthConfig) (*oauth2.Token, error) {
	conf := cfg.oauth2Config()
	url := conf.AuthCodeURL("", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "select_account"))

	fmt.Printf("\nPlease go to %s and authorize access.\n", url)
	fmt.Println("After authorizing, copy the authorization code and paste it below.")
	fmt.Print("\nEnter the authorization code: ")

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := SaveToken(cfg.TokenFile, token); err != nil {
		return nil, err
	}
	log.Info().Str("file", cfg.TokenFile).Msg("Saved OAuth token")
	return token, nil
}

// persistingSource wraps a refreshing token source and writes refreshed
// tokens back to disk so the next run starts authenticated.
type persistingSource struct {
	src  oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	token, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken != s.last {
		s.last = token.AccessToken
		if err := SaveToken(s.path, token); err != nil {
			log.Warn().Err(err).Msg("Failed to persist refreshed token")
		} else {
			log.Debug().Msg("Persisted refreshed OAuth token")
		}
	}
	return token, nil
}

// HTTPClient builds an authenticated *http.Client from the saved token,
// refreshing and re-persisting it transparently. Callers that have no
// token yet should run Authenticate first.
func (c OAuthConfig) HTTPClient(ctx context.Context) (*http.Client, error) {
	token, err := LoadToken(c.TokenFile)
	if err != nil {
		return nil, err
	}
	conf := c.oauth2Config()
	src := &persistingSource{
		src:  conf.TokenSource(ctx, token),
		path: c.TokenFile,
		last: token.AccessToken,
	}
	return oauth2.NewClient(ctx, src), nil
}

// EnsureAuthenticated returns an authenticated client, falling back to the
// interactive flow when no usable token exists.
func (c OAuthConfig) EnsureAuthenticated(ctx context.Context) (*http.Client, error) {
	client, err := c.HTTPClient(ctx)
	if err == nil {
		return client, nil
	}
	log.Debug().Err(err).Msg("No usable saved token; starting interactive authentication")
	if _, err := Authenticate(ctx, c); err != nil {
		return nil, err
	}
	return c.HTTPClient(ctx)
}
