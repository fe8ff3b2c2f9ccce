package auth

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/cache"
	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tmeckel/m365-cli/internal/config"
	"golang.org/x/oauth2"
)

const authorityHost = "https://login.microsoftonline.com/"

// tokenCache persists the MSAL cache through the auth configuration.
type tokenCache struct {
	authCfg config.AuthConfig
}

var _ cache.ExportReplace = (*tokenCache)(nil)

func (t *tokenCache) Replace(_ context.Context, u cache.Unmarshaler, _ cache.ReplaceHints) error {
	data, err := t.authCfg.LoadTokenCache()
	if err != nil || len(data) == 0 {
		return err
	}
	return u.Unmarshal(data)
}

func (t *tokenCache) Export(_ context.Context, m cache.Marshaler, _ cache.ExportHints) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return t.authCfg.SaveTokenCache(data)
}

type publicClient struct {
	app public.Client
}

func newPublicClient(conn *config.ConnectionInfo, authCfg config.AuthConfig) (*publicClient, error) {
	app, err := public.New(conn.AppID,
		public.WithAuthority(authorityHost+conn.Tenant),
		public.WithCache(&tokenCache{authCfg: authCfg}))
	if err != nil {
		return nil, fmt.Errorf("failed to create public client: %w", err)
	}
	return &publicClient{app: app}, nil
}

// account returns the cached account for name, or the first cached account
// when name is empty.
func (c *publicClient) account(ctx context.Context, name string) (public.Account, error) {
	accounts, err := c.app.Accounts(ctx)
	if err != nil {
		return public.Account{}, err
	}
	for _, a := range accounts {
		if name == "" || strings.EqualFold(a.PreferredUsername, name) {
			return a, nil
		}
	}
	return public.Account{}, ErrLoginRequired
}

func (c *publicClient) silentToken(ctx context.Context, accountName, scope string) (*oauth2.Token, error) {
	acc, err := c.account(ctx, accountName)
	if err != nil {
		return nil, err
	}
	res, err := c.app.AcquireTokenSilent(ctx, []string{scope}, public.WithSilentAccount(acc))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoginRequired, err)
	}
	return &oauth2.Token{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		Expiry:      res.ExpiresOn,
	}, nil
}

func (c *publicClient) deviceCodeLogin(ctx context.Context, scope string, out io.Writer) (string, error) {
	dc, err := c.app.AcquireTokenByDeviceCode(ctx, []string{scope})
	if err != nil {
		return "", fmt.Errorf("failed to start device code sign-in: %w", err)
	}
	fmt.Fprintln(out, dc.Result.Message)
	res, err := dc.AuthenticationResult(ctx)
	if err != nil {
		return "", fmt.Errorf("device code sign-in failed: %w", err)
	}
	return res.Account.PreferredUsername, nil
}

// publicTokenSource acquires tokens from the MSAL cache, refreshing them
// silently when needed.
type publicTokenSource struct {
	ctx     context.Context
	client  *publicClient
	account string
	scope   string
}

func (s *publicTokenSource) Token() (*oauth2.Token, error) {
	return s.client.silentToken(s.ctx, s.account, s.scope)
}

// accountFromToken returns the user principal name or application name
// contained in an access token. The signature is not verified.
func accountFromToken(accessToken string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return ""
	}
	for _, c := range []string{"upn", "unique_name", "app_displayname", "appid"} {
		if v, ok := claims[c].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
