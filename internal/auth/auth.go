// Package auth acquires Microsoft Entra ID access tokens for the configured
// connection.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/tmeckel/m365-cli/internal/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const GraphScope = "https://graph.microsoft.com/.default"

// ErrLoginRequired is returned when no token can be acquired without user interaction.
var ErrLoginRequired = errors.New("login required")

// Provider creates token sources for the connection stored in the configuration.
type Provider struct {
	authCfg config.AuthConfig
}

func NewProvider(authCfg config.AuthConfig) *Provider {
	return &Provider{authCfg: authCfg}
}

// TokenSource returns a token source for scope using the configured
// authentication type.
func (p *Provider) TokenSource(ctx context.Context, scope string) (oauth2.TokenSource, error) {
	conn, err := p.authCfg.GetConnection()
	if err != nil {
		if errors.Is(err, config.ErrNotLoggedIn) {
			return nil, fmt.Errorf("%w: %w", ErrLoginRequired, err)
		}
		return nil, err
	}
	zap.L().Sugar().Debugf("acquiring token for %s using %s authentication", scope, conn.AuthType)

	if conn.AuthType == config.AuthTypeDeviceCode {
		client, err := newPublicClient(conn, p.authCfg)
		if err != nil {
			return nil, err
		}
		return &publicTokenSource{ctx: ctx, client: client, account: conn.Account, scope: scope}, nil
	}

	cred, err := p.credential(conn)
	if err != nil {
		return nil, err
	}
	return &credentialTokenSource{ctx: ctx, cred: cred, scope: scope}, nil
}

func (p *Provider) credential(conn *config.ConnectionInfo) (azcore.TokenCredential, error) {
	switch conn.AuthType {
	case config.AuthTypeSecret:
		secret, err := p.authCfg.GetSecret()
		if err != nil {
			return nil, err
		}
		return azidentity.NewClientSecretCredential(conn.Tenant, conn.AppID, secret, nil)
	case config.AuthTypeIdentity:
		opts := &azidentity.ManagedIdentityCredentialOptions{}
		if conn.Identity != "" {
			opts.ID = azidentity.ClientID(conn.Identity)
		}
		return azidentity.NewManagedIdentityCredential(opts)
	case config.AuthTypeAzureCLI:
		opts := &azidentity.AzureCLICredentialOptions{}
		if conn.Tenant != "" && conn.Tenant != "common" {
			opts.TenantID = conn.Tenant
		}
		return azidentity.NewAzureCLICredential(opts)
	}
	return nil, fmt.Errorf("unsupported authentication type %q", conn.AuthType)
}

// credentialTokenSource adapts an azcore.TokenCredential to oauth2.TokenSource.
type credentialTokenSource struct {
	ctx   context.Context
	cred  azcore.TokenCredential
	scope string
}

func (s *credentialTokenSource) Token() (*oauth2.Token, error) {
	tk, err := s.cred.GetToken(s.ctx, policy.TokenRequestOptions{Scopes: []string{s.scope}})
	if err != nil {
		var authErr *azidentity.AuthenticationFailedError
		if errors.As(err, &authErr) {
			return nil, fmt.Errorf("%w: %w", ErrLoginRequired, err)
		}
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: tk.Token,
		TokenType:   "Bearer",
		Expiry:      tk.ExpiresOn,
	}, nil
}

// Login signs in interactively for device code connections and stores the
// signed-in account. Other authentication types acquire one Graph token to
// verify the credentials. The account name is returned.
func Login(ctx context.Context, authCfg config.AuthConfig, out io.Writer) (string, error) {
	conn, err := authCfg.GetConnection()
	if err != nil {
		return "", err
	}

	if conn.AuthType == config.AuthTypeDeviceCode {
		client, err := newPublicClient(conn, authCfg)
		if err != nil {
			return "", err
		}
		account, err := client.deviceCodeLogin(ctx, GraphScope, out)
		if err != nil {
			return "", err
		}
		return account, authCfg.SetAccount(account)
	}

	ts, err := NewProvider(authCfg).TokenSource(ctx, GraphScope)
	if err != nil {
		return "", err
	}
	tk, err := ts.Token()
	if err != nil {
		return "", err
	}
	account := accountFromToken(tk.AccessToken)
	return account, authCfg.SetAccount(account)
}

// Status describes the signed-in connection.
type Status struct {
	Connection *config.ConnectionInfo
	Account    string
	ExpiresOn  time.Time
}

// CheckStatus acquires a Graph token for the stored connection and reports
// who it was issued to and when it expires.
func CheckStatus(ctx context.Context, authCfg config.AuthConfig) (*Status, error) {
	conn, err := authCfg.GetConnection()
	if err != nil {
		return nil, err
	}
	ts, err := NewProvider(authCfg).TokenSource(ctx, GraphScope)
	if err != nil {
		return nil, err
	}
	tk, err := ts.Token()
	if err != nil {
		return nil, err
	}
	account := accountFromToken(tk.AccessToken)
	if account == "" {
		account = conn.Account
	}
	return &Status{
		Connection: conn,
		Account:    account,
		ExpiresOn:  tk.Expiry,
	}, nil
}
