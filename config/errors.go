package config

import "errors"

var (
	// ErrConfigUnmarshal is returned when config unmarshalling fails
	ErrConfigUnmarshal = errors.New("failed to unmarshal configuration")
	// ErrConfigFileLoad is returned when the config file cannot be read or parsed
	ErrConfigFileLoad = errors.New("failed to load configuration file")
	// ErrEnvLoad is returned when environment overrides cannot be loaded
	ErrEnvLoad = errors.New("failed to load environment configuration")
)
