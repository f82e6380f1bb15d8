package session

import (
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config exposes the settings the client needs: where the API lives and where
// session state is cached on disk.
type Config interface {
	APIURL() string
	BasePath() string
}

// LoadConfig reads a .scribe config file and SCRIBE_* environment variables.
func LoadConfig() (Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		home = "."
	}

	viper.SetDefault("api_url", "http://localhost:8080")
	viper.SetDefault("path", filepath.Join(home, ".scribe.db"))
	viper.SetConfigName(".scribe") // .yaml is implicit
	viper.SetEnvPrefix("SCRIBE")
	viper.AutomaticEnv()

	if override := os.Getenv("SCRIBE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath(home)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("error reading config file: %v", err)
			return nil, err
		}
	}

	return &fileConfig{
		URL:  viper.GetString("api_url"),
		Path: viper.GetString("path"),
	}, nil
}

type fileConfig struct {
	URL  string `json:"api_url"`
	Path string `json:"path"`
}

func (f *fileConfig) APIURL() string   { return f.URL }
func (f *fileConfig) BasePath() string { return f.Path }
