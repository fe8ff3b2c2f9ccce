package set

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
	iutil "github.com/tmeckel/m365-cli/internal/util"
)

type setOptions struct {
	key   string
	value string
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update configuration with a value for the given key",
		Example: heredoc.Doc(`
			$ m365 config set output text
			$ m365 config set pager "less -R"
			$ m365 config set prompt disabled
			$ m365 config set spo_url https://contoso.sharepoint.com
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.key = args[0]
			opts.value = args[1]

			return runCommand(ctx, opts)
		},
	}

	return cmd
}

func runCommand(ctx util.CmdContext, opts *setOptions) error {
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}
	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}

	if err := validateKey(opts.key); err != nil {
		fmt.Fprintf(ios.ErrOut, "%s warning: '%s' is not a known configuration key\n", ios.ColorScheme().WarningIcon(), opts.key)
	}

	if err := validateValue(opts.key, opts.value); err != nil {
		var invalidValue InvalidValueError
		if errors.As(err, &invalidValue) {
			var values []string
			for _, v := range invalidValue.ValidValues {
				values = append(values, fmt.Sprintf("'%s'", v))
			}
			return fmt.Errorf("failed to set %q to %q: valid values are %v", opts.key, opts.value, strings.Join(values, ", "))
		}
		return fmt.Errorf("failed to set %q: %w", opts.key, err)
	}

	cfg.Set([]string{opts.key}, opts.value)

	if err := cfg.Write(); err != nil {
		return fmt.Errorf("failed to write config to disk: %w", err)
	}
	return nil
}

func validateKey(key string) error {
	keys := hashset.New()
	for _, co := range config.Options() {
		keys.Add(co.Key)
	}
	if !keys.Contains(key) {
		return fmt.Errorf("invalid key")
	}
	return nil
}

type InvalidValueError struct {
	ValidValues []string
}

func (e InvalidValueError) Error() string {
	return "invalid value"
}

func validateValue(key, value string) error {
	if key == config.SpoURL {
		return iutil.ValidateSharePointURL(value)
	}

	var validValues []string
	for _, v := range config.Options() {
		if v.Key == key {
			validValues = v.AllowedValues
			break
		}
	}

	if validValues == nil {
		return nil
	}

	for _, v := range validValues {
		if v == value {
			return nil
		}
	}

	return InvalidValueError{ValidValues: validValues}
}
