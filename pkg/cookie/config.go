package cookie

import (
	"net/http"
	"strings"
)

// Config holds cookie manager configuration.
type Config struct {
	Secrets  string `env:"COOKIE_SECRETS,required"` // comma separated, newest first
	Domain   string `env:"COOKIE_DOMAIN" envDefault:""`
	Secure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite string `env:"COOKIE_SAME_SITE" envDefault:"lax"`
}

// NewFromConfig creates a Manager from cfg, appending opts after the
// config-derived options.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	var secrets []string
	for s := range strings.SplitSeq(cfg.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	configOpts := []Option{
		WithSecure(cfg.Secure),
		WithSameSite(parseSameSite(cfg.SameSite)),
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}

	return New(secrets, append(configOpts, opts...)...)
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
