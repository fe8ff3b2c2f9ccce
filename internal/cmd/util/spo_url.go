package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tmeckel/m365-cli/internal/config"
	"go.uber.org/zap"
)

// SpoURL returns the SharePoint root URL of the tenant, e.g.
// https://contoso.sharepoint.com. When it is not configured it is looked up
// once through Microsoft Graph and stored in the configuration.
func SpoURL(ctx CmdContext) (string, error) {
	cfg, err := ctx.Config()
	if err != nil {
		return "", err
	}
	if v, _ := cfg.Get([]string{config.SpoURL}); v != "" {
		return strings.TrimRight(v, "/"), nil
	}

	client, err := ctx.ClientFactory().Graph(ctx.Context())
	if err != nil {
		return "", err
	}
	webURL, err := client.RootSiteURL(ctx.Context())
	if err != nil {
		return "", fmt.Errorf("failed to discover the SharePoint URL: %w", err)
	}
	spoURL := strings.TrimRight(webURL, "/")
	if spoURL == "" {
		return "", errors.New("failed to discover the SharePoint URL; set it with `m365 spo set --url`")
	}

	zap.L().Sugar().Debugf("discovered SharePoint URL %s", spoURL)
	cfg.Set([]string{config.SpoURL}, spoURL)
	if err := cfg.Write(); err != nil {
		zap.L().Sugar().Debugf("failed to save SharePoint URL: %v", err)
	}
	return spoURL, nil
}
