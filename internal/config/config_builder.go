package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
)

type configBuilder struct {
	configs []*StructuredConfig
	source  credentials.Source
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
		source:  credentials.MapSource{},
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range append(b.configs, defaults()) {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg, err := parseEnv()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withINI() *configBuilder {
	iniPath := DefaultINIFile
	for _, cfg := range b.configs {
		if cfg.INIFilePath != "" {
			iniPath = cfg.INIFilePath
			break
		}
	}

	iniCfg, source, err := parseINI(iniPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, iniCfg)
	b.source = source
	return b
}
