package config

import "context"

// ctxKey is the context key for the effective Config
type ctxKey struct{}

// ForRoot returns the effective config for a workspace root, merging any
// .qdoc.toml found there with the global config.
func ForRoot(global *Config, root string) (*Config, error) {
	local, err := LoadLocal(root)
	if err != nil {
		return nil, err
	}
	return MergeLocal(global, local), nil
}

// WithConfig returns a new context carrying the effective config.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config from context. Returns the defaults when
// none is stored, so callers never see nil.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok && cfg != nil {
		return cfg
	}
	def := Default()
	return &def
}
