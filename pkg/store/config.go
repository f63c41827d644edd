package store

import (
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/rota/pkg/schedule"
)

// Config exposes everything the store and the external-service client
// need from the operator's configuration file.
type Config interface {
	BasePath() string
	Resources() []schedule.Resource
	Assist() AssistConfig
}

// AssistConfig locates the external text-generation service.
type AssistConfig struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// LoadConfig reads .rota.yaml (current directory or ROTA_CONFIG_PATH)
// and environment overrides with the ROTA prefix.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.rota.db")
	viper.SetDefault("assist.model", "gemini-2.5-flash")
	viper.SetDefault("assist.timeout", "30s")
	viper.SetConfigName(".rota") // .yaml is implicit
	viper.SetEnvPrefix("ROTA")
	viper.AutomaticEnv()

	if override := os.Getenv("ROTA_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	cfg := &fileConfig{
		Path: path,
		AssistCfg: AssistConfig{
			Endpoint: viper.GetString("assist.endpoint"),
			Model:    viper.GetString("assist.model"),
			APIKey:   viper.GetString("assist.key"),
			Timeout:  viper.GetDuration("assist.timeout"),
		},
	}
	if err := viper.UnmarshalKey("resources", &cfg.Roster); err != nil {
		return nil, err
	}
	if len(cfg.Roster) == 0 {
		cfg.Roster = DefaultRoster()
	}
	return cfg, nil
}

type fileConfig struct {
	Path      string
	Roster    []schedule.Resource
	AssistCfg AssistConfig
}

func (f *fileConfig) BasePath() string { return f.Path }

func (f *fileConfig) Resources() []schedule.Resource { return f.Roster }

func (f *fileConfig) Assist() AssistConfig { return f.AssistCfg }

// DefaultRoster seeds a working surgical roster when the configuration
// file does not define one.
func DefaultRoster() []schedule.Resource {
	return []schedule.Resource{
		{ID: 1, Label: "Dr. Arben Kodra", Category: "General Surgery", Style: "#2563eb"},
		{ID: 2, Label: "Dr. Ilir Dervishi", Category: "Cardiology", Style: "#dc2626"},
		{ID: 3, Label: "Dr. Gentiana Hoxha", Category: "Neurology", Style: "#9333ea"},
		{ID: 4, Label: "Dr. Blendi Shala", Category: "Orthopedics", Style: "#16a34a"},
		{ID: 5, Label: "Dr. Arlinda Kuqi", Category: "Pediatrics", Style: "#ca8a04"},
		{ID: 6, Label: "Dr. Marco Bellini", Category: "General Surgery", Style: "#0891b2"},
	}
}
