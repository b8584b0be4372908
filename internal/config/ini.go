package config

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/ini.v1"
)

// iniSource exposes a parsed INI file as a [credentials.Source].
type iniSource struct {
	file *ini.File
}

// Value returns the raw text of key in section. Keys are matched
// case-insensitively like Python's configparser does.
func (s iniSource) Value(section, key string) (string, bool) {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return "", false
	}
	if !sec.HasKey(key) {
		return "", false
	}
	return sec.Key(key).String(), true
}

// LoadINI parses path. A missing file or a file without any section is
// reported as [ErrINIFileNotFound].
func LoadINI(path string) (*ini.File, error) {
	file, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrINIFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading ini file %s: %w", path, err)
	}

	// the unnamed DEFAULT section is always present
	if len(file.SectionStrings()) <= 1 {
		return nil, fmt.Errorf("%w: %s has no sections", ErrINIFileNotFound, path)
	}

	return file, nil
}

func parseINI(path string) (*StructuredConfig, iniSource, error) {
	file, err := LoadINI(path)
	if err != nil {
		return nil, iniSource{}, err
	}

	cfg := &StructuredConfig{}
	sections := []struct {
		name   string
		target any
	}{
		{"GERAL", &cfg.App},
		{"CREDENCIAS_APP", &cfg.Credentials},
		{"EMAIL", &cfg.Email},
		{"NAVEGADOR", &cfg.Browser},
		{"RETENTATIVAS", &cfg.Retry},
		{"HISTORICO", &cfg.Storage},
	}

	for _, s := range sections {
		sec, err := file.GetSection(s.name)
		if err != nil {
			continue
		}
		if err := sec.StrictMapTo(s.target); err != nil {
			return nil, iniSource{}, fmt.Errorf("error decoding ini section [%s]: %w", s.name, err)
		}
	}

	return cfg, iniSource{file: file}, nil
}
