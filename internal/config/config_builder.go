package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects config layers in priority order. Layer errors are
// accumulated and reported together by build.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{configs: make([]*StructuredConfig, 0, 4)}
}

func (b *configBuilder) add(cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, cfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder { return b.add(defaults(), nil) }

func (b *configBuilder) withEnv() *configBuilder { return b.add(envConfig()) }

func (b *configBuilder) withFlags() *configBuilder { return b.add(ParseFlags()) }

// withJSON loads the file named by the most recent layer that names one.
func (b *configBuilder) withJSON() *configBuilder {
	path := ""
	for i := len(b.configs) - 1; i >= 0 && path == ""; i-- {
		path = b.configs[i].JSONFilePath
	}
	if path == "" {
		return b
	}
	return b.add(parseJSON(path))
}

// build folds the layers into one config, each non-zero field overriding
// the layers before it, and validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error building config: %w", b.err)
	}

	merged := &StructuredConfig{}
	for i, layer := range b.configs {
		if err := mergo.Merge(merged, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging config layer %d: %w", i, err)
		}
	}

	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
