package export

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/meltforce/coachdesk/internal/errs"
	"golang.org/x/oauth2"
)

// googleEndpoint is Google's OAuth2 endpoint. Declared here rather than
// pulled from a provider package so the exporter carries no extra deps.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

const driveScope = "https://www.googleapis.com/auth/drive"

// Authorizer performs the user-mediated authorization-code exchange and
// caches the resulting token in a local file, so the core workflow never
// depends on any specific auth flow.
type Authorizer struct {
	conf      *oauth2.Config
	tokenFile string

	mu sync.Mutex
}

// NewAuthorizer constructs an Authorizer caching tokens at tokenFile.
func NewAuthorizer(clientID, clientSecret, tokenFile string) *Authorizer {
	return &Authorizer{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     googleEndpoint,
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
			Scopes:       []string{driveScope},
		},
		tokenFile: tokenFile,
	}
}

// AuthURL returns the URL the user must visit to obtain an authorization code.
func (a *Authorizer) AuthURL() string {
	return a.conf.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and caches it.
func (a *Authorizer) Exchange(ctx context.Context, code string) error {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchanging authorization code: %w", err)
	}
	return a.saveToken(tok)
}

// Authorized reports whether a cached token exists.
func (a *Authorizer) Authorized() bool {
	_, err := a.loadToken()
	return err == nil
}

// Client returns an HTTP client that attaches (and refreshes) the cached
// token. Returns errs.ErrAuthRequired when no token has been cached yet.
func (a *Authorizer) Client(ctx context.Context) (*http.Client, error) {
	tok, err := a.loadToken()
	if err != nil {
		return nil, errs.ErrAuthRequired
	}
	src := &savingTokenSource{
		src:  a.conf.TokenSource(ctx, tok),
		auth: a,
		last: tok,
	}
	return oauth2.NewClient(ctx, src), nil
}

func (a *Authorizer) loadToken() (*oauth2.Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, err := os.ReadFile(a.tokenFile)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parsing token cache: %w", err)
	}
	return &tok, nil
}

func (a *Authorizer) saveToken(tok *oauth2.Token) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	if err := os.WriteFile(a.tokenFile, data, 0o600); err != nil {
		return fmt.Errorf("writing token cache: %w", err)
	}
	return nil
}

// savingTokenSource persists refreshed tokens back to the cache file so a
// refresh survives restarts.
type savingTokenSource struct {
	src  oauth2.TokenSource
	auth *Authorizer
	last *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last.AccessToken {
		s.last = tok
		if err := s.auth.saveToken(tok); err != nil {
			return nil, err
		}
	}
	return tok, nil
}
