package goAdmin

import (
	"sync"

	"github.com/ianschenck/envflag"
)

var (
	envOnce    sync.Once
	envBaseURL string
)

// ConfigFromEnv returns [DefaultConfig] with the single supported environment
// override applied: GOADMIN_BASE_URL replaces Gateway.BaseURL when set. No
// other knob is environment-configurable; everything else goes through
// [Builder.WithConfig]. The environment is read once per process.
func ConfigFromEnv() Config {
	envOnce.Do(func() {
		baseURL := envflag.String("GOADMIN_BASE_URL", "", "moderation API base URL")
		envflag.Parse()
		envBaseURL = *baseURL
	})

	cfg := defaultConfig()
	if envBaseURL != "" {
		cfg.Gateway.BaseURL = envBaseURL
	}
	return cfg
}
