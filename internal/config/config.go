// Package config loads ner.Settings from defaults, an optional YAML file and
// PALLADIAN_* environment variables, in increasing order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/kittclouds/palladian/pkg/ner"
)

// EnvPrefix prefixes every environment variable, e.g.
// PALLADIAN_WINDOW_SIZE or PALLADIAN_STAGES_TAG_DATES.
const EnvPrefix = "PALLADIAN"

// Load reads the settings. cfgFile may be empty, in which case
// palladian.yaml is looked up in the working directory and in
// $HOME/.palladian. A non-empty mode overrides the configured language
// mode; the defaults follow the resulting mode.
func Load(cfgFile string, mode ner.LanguageMode) (ner.Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("palladian")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.palladian")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return ner.Settings{}, fmt.Errorf("config: read %s: %w", cfgFile, err)
		}
	}

	if mode == "" {
		mode = ner.LanguageMode(v.GetString("language_mode"))
	}
	if mode == "" {
		mode = ner.English
	}
	if err := setDefaults(v, ner.DefaultSettings(mode)); err != nil {
		return ner.Settings{}, err
	}
	v.Set("language_mode", string(mode))

	var s ner.Settings
	if err := v.Unmarshal(&s); err != nil {
		return ner.Settings{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return ner.Settings{}, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// setDefaults registers every leaf of defaults, so that AutomaticEnv can
// see nested keys.
func setDefaults(v *viper.Viper, defaults ner.Settings) error {
	raw, err := json.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("config: encode defaults: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("config: decode defaults: %w", err)
	}
	setLeaves(v, "", tree)
	// omitted from the JSON form when empty
	if err := v.BindEnv("concept_likelihood_order"); err != nil {
		return fmt.Errorf("config: bind env: %w", err)
	}
	return nil
}

func setLeaves(v *viper.Viper, prefix string, tree map[string]any) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := value.(map[string]any); ok {
			setLeaves(v, key, sub)
			continue
		}
		v.SetDefault(key, value)
	}
}
