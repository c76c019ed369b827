// Package config loads the per-instance casebook.yaml. The file is
// optional; a missing file yields the defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/casebook/internal/paths"
	"github.com/mesh-intelligence/casebook/pkg/types"
)

// Keys in casebook.yaml.
const (
	KeyInstanceID = "instance_id"
	KeyFilterMode = "filter_mode"
)

// Config is the parsed instance configuration.
type Config struct {
	InstanceID string
	// FilterMode is the fallback profile-filter mode, used when the
	// checklist's template configuration declares none. Defaults to OR.
	FilterMode string
}

// Load reads casebook.yaml from the instance directory. A missing file is
// not an error; defaults apply.
func Load(instanceDir string) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyFilterMode, types.FilterModeOR)
	v.SetConfigFile(paths.ConfigFile(instanceDir))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// SetConfigFile surfaces a plain not-exist error rather than
		// viper.ConfigFileNotFoundError.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return &Config{
		InstanceID: v.GetString(KeyInstanceID),
		FilterMode: v.GetString(KeyFilterMode),
	}, nil
}
