package util

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/config"
)

func DisableAuthCheck(cmd *cobra.Command) {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}

	cmd.Annotations["skipAuthCheck"] = "true"
}

// CheckAuth reports whether a connection is configured, either in the config
// file or through environment variables.
func CheckAuth(cfg config.Config) bool {
	_, err := cfg.Authentication().GetConnection()
	return err == nil
}

func IsAuthCheckEnabled(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}

	for c := cmd; c.Parent() != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipAuthCheck"] == "true" {
			return false
		}
	}

	return true
}
