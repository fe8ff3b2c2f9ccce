package config

import (
	"errors"
	"fmt"
)

// ConfigOption describes a general configuration key.
type ConfigOption struct {
	Key           string
	Description   string
	DefaultValue  string
	AllowedValues []string
}

var configOptions = []ConfigOption{
	{
		Key:           Output,
		Description:   "the default output format",
		DefaultValue:  "json",
		AllowedValues: []string{"json", "text", "csv", "md"},
	},
	{
		Key:           Prompt,
		Description:   "toggle interactive prompting in the terminal",
		DefaultValue:  "enabled",
		AllowedValues: []string{"enabled", "disabled"},
	},
	{
		Key:          Pager,
		Description:  "the terminal pager program to send standard output to",
		DefaultValue: "",
	},
	{
		Key:           ShowSpinner,
		Description:   "show a spinner while requests are running",
		DefaultValue:  "enabled",
		AllowedValues: []string{"enabled", "disabled"},
	},
	{
		Key:          SpoURL,
		Description:  "the root URL of the SharePoint Online tenant",
		DefaultValue: "",
	},
}

// Options returns the known general configuration keys.
func Options() []ConfigOption {
	return configOptions
}

func defaultFor(key string) string {
	for _, co := range configOptions {
		if co.Key == key {
			return co.DefaultValue
		}
	}
	return ""
}

// KeyNotFoundError is returned when a key is not present in the configuration.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("could not find key %q", e.Key)
}

func (e *KeyNotFoundError) Is(target error) bool {
	var t *KeyNotFoundError
	return errors.As(target, &t)
}

// InvalidConfigFileError is returned when a configuration file cannot be parsed.
type InvalidConfigFileError struct {
	Path string
	Err  error
}

func (e *InvalidConfigFileError) Error() string {
	return fmt.Sprintf("invalid config file %s: %s", e.Path, e.Err)
}

func (e *InvalidConfigFileError) Unwrap() error {
	return e.Err
}
