package maincmd

import "github.com/caarlos0/env/v6"

// EnvConfig holds the settings this binary reads from the environment,
// layered underneath whatever the command line overrides (spec.md §6.3's
// artifacts_dir parameter).
type EnvConfig struct {
	ArtifactsDir string `env:"HLML_ARTIFACTS_DIR" envDefault:"."`
}

// LoadEnvConfig parses EnvConfig from the process environment.
func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}
