package configs

import (
	"flag"
	"os"

	"github.com/hilthontt/personnel/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file from --config, PERSONNEL_CONFIG
// or a list of well-known locations. An empty result means defaults and
// environment only.
func DetermineConfigPath() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = env.GetString("PERSONNEL_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"./tmp/config.yaml",
			"../../config.yaml",
			"/etc/personnel/config.yaml",
			"/app/config.yaml",
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}

func lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}
