package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
)

const (
	m365AppID        = "M365_APP_ID"
	m365Tenant       = "M365_TENANT"
	m365ClientSecret = "M365_CLIENT_SECRET"

	keyringService   = "m365"
	keyringSecretKey = "client-secret"
	keyringCacheKey  = "token-cache"

	plainSecret     = "secret"
	insecureStorage = "insecure_storage"
)

// Supported authentication types.
const (
	AuthTypeDeviceCode = "deviceCode"
	AuthTypeSecret     = "secret"
	AuthTypeIdentity   = "identity"
	AuthTypeAzureCLI   = "azcli"
)

// DefaultAppID is the multi-tenant public client used for device code sign-in
// when no app id is configured.
const DefaultAppID = "31359c7f-bd7e-475c-86db-fdb8c937548e"

var authTypes = hashset.New(AuthTypeDeviceCode, AuthTypeSecret, AuthTypeIdentity, AuthTypeAzureCLI)

// ErrNotLoggedIn is returned when no connection has been configured.
var ErrNotLoggedIn = errors.New("not logged in")

// ConnectionInfo describes how m365 signs in to Microsoft 365.
type ConnectionInfo struct {
	AuthType string `json:"authType"`
	AppID    string `json:"appId"`
	Tenant   string `json:"tenant"`
	// Identity is the client id of a user assigned managed identity.
	Identity string `json:"identity,omitempty"`
	// Account is the user principal name or app display name after sign-in.
	Account string `json:"account,omitempty"`
}

type AuthConfig interface {
	GetConnection() (*ConnectionInfo, error)
	SetAccount(account string) error
	GetSecret() (string, error)
	Login(conn ConnectionInfo, secret string, secureStorage bool) error
	Logout() error
	LoadTokenCache() ([]byte, error)
	SaveTokenCache(data []byte) error
}

// authConfig is used for interacting with some persistent configuration for m365,
// with knowledge on how to access encrypted storage when neccesarry.
type authConfig struct {
	cfg Config
}

// GetConnection returns the stored connection with environment overrides
// applied. It returns ErrNotLoggedIn when no connection exists.
func (c *authConfig) GetConnection() (*ConnectionInfo, error) {
	get := func(key string) string {
		v, _ := c.cfg.Get([]string{Connection, key})
		return v
	}
	authType := get("auth_type")
	if authType == "" {
		if _, ok := os.LookupEnv(m365ClientSecret); !ok {
			return nil, ErrNotLoggedIn
		}
		authType = AuthTypeSecret
	}
	conn := &ConnectionInfo{
		AuthType: authType,
		AppID:    get("app_id"),
		Tenant:   get("tenant"),
		Identity: get("identity"),
		Account:  get("account"),
	}
	if v, ok := os.LookupEnv(m365AppID); ok {
		conn.AppID = v
	}
	if v, ok := os.LookupEnv(m365Tenant); ok {
		conn.Tenant = v
	}
	if conn.Tenant == "" {
		conn.Tenant = "common"
	}
	if conn.AppID == "" && conn.AuthType == AuthTypeDeviceCode {
		conn.AppID = DefaultAppID
	}
	return conn, nil
}

func (c *authConfig) SetAccount(account string) error {
	if _, err := c.cfg.Get([]string{Connection, "auth_type"}); err != nil {
		return ErrNotLoggedIn
	}
	c.cfg.Set([]string{Connection, "account"}, account)
	return c.cfg.Write()
}

// GetSecret returns the client secret, searching the environment, the
// keyring and lastly the plain text connection file.
func (c *authConfig) GetSecret() (string, error) {
	if v, ok := os.LookupEnv(m365ClientSecret); ok {
		return v, nil
	}
	secret, err := keyring.Get(keyringService, keyringSecretKey)
	if err == nil {
		return secret, nil
	}
	zap.L().Sugar().Debugf("client secret not in keyring: %v", err)
	return c.cfg.Get([]string{Connection, plainSecret})
}

// Login stores the connection. If secureStorage is set the secret goes to the
// keyring, falling back to the plain text connection file.
func (c *authConfig) Login(conn ConnectionInfo, secret string, secureStorage bool) error {
	if !authTypes.Contains(conn.AuthType) {
		return fmt.Errorf("unsupported authentication type %q", conn.AuthType)
	}

	_ = c.cfg.Remove([]string{Connection})
	c.cfg.Set([]string{Connection, "auth_type"}, conn.AuthType)
	if conn.AppID != "" {
		c.cfg.Set([]string{Connection, "app_id"}, conn.AppID)
	}
	if conn.Tenant != "" {
		c.cfg.Set([]string{Connection, "tenant"}, conn.Tenant)
	}
	if conn.Identity != "" {
		c.cfg.Set([]string{Connection, "identity"}, conn.Identity)
	}
	if conn.Account != "" {
		c.cfg.Set([]string{Connection, "account"}, conn.Account)
	}
	if !secureStorage {
		c.cfg.Set([]string{Connection, insecureStorage}, "true")
	}

	if secret != "" {
		var setErr error
		if secureStorage {
			setErr = keyring.Set(keyringService, keyringSecretKey, secret)
		}
		if !secureStorage || setErr != nil {
			c.cfg.Set([]string{Connection, plainSecret}, secret)
		}
	}
	return c.cfg.Write()
}

// Logout removes the connection, the stored secret and the token cache.
func (c *authConfig) Logout() error {
	if err := c.cfg.Remove([]string{Connection}); err != nil {
		return ErrNotLoggedIn
	}
	for _, key := range []string{keyringSecretKey, keyringCacheKey} {
		if err := keyring.Delete(keyringService, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			zap.L().Sugar().Debugf("failed to delete %s from keyring: %v", key, err)
		}
	}
	if err := os.Remove(tokenCacheFile()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return c.cfg.Write()
}

// LoadTokenCache returns the serialized token cache, or nil when none exists.
func (c *authConfig) LoadTokenCache() ([]byte, error) {
	if !c.insecure() {
		data, err := keyring.Get(keyringService, keyringCacheKey)
		if err == nil {
			return []byte(data), nil
		}
		if !errors.Is(err, keyring.ErrNotFound) {
			zap.L().Sugar().Debugf("failed to read token cache from keyring: %v", err)
		}
	}
	data, err := readFile(tokenCacheFile())
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}

// SaveTokenCache persists the serialized token cache. Caches too large for
// the keyring are written to the state directory.
func (c *authConfig) SaveTokenCache(data []byte) error {
	if !c.insecure() {
		err := keyring.Set(keyringService, keyringCacheKey, string(data))
		if err == nil {
			return nil
		}
		zap.L().Sugar().Debugf("failed to write token cache to keyring: %v", err)
	}
	return writeFile(tokenCacheFile(), data)
}

func (c *authConfig) insecure() bool {
	v, err := c.cfg.Get([]string{Connection, insecureStorage})
	return err == nil && v == "true"
}

func tokenCacheFile() string {
	return filepath.Join(StateDir(), "token-cache.json")
}
