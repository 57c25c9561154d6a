package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// LoadGameConfig reads the game tunables YAML. Resolution order:
//  1. explicit path argument
//  2. GAME_CONFIG_PATH environment variable
//  3. config/game_config.yaml relative to the working directory
//
// A missing file is not an error: the engine defaults cover every key, so
// an empty GameConfig is returned.
func LoadGameConfig(path string) (GameConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path == "" {
		path = os.Getenv("GAME_CONFIG_PATH")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("game_config")
		v.AddConfigPath("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return GameConfig{}, nil
		}
		if os.IsNotExist(err) {
			return GameConfig{}, nil
		}
		return nil, fmt.Errorf("error reading game config: %w", err)
	}

	return GameConfig(v.AllSettings()), nil
}
