// Package config provides the confit CLI's own settings.
//
// Settings are kept with the same machinery the CLI manages for other
// applications: a YAML file at <root>/confit/settings.yaml, created with
// defaults by confit.LoadOrInit on first run:
//
//	version: 1
//	default_format: json
//	root: ""
//	log_format: text
//	editor: ""
//
// Viper layers environment overrides on top of the file. Every key can be
// overridden with a CONFIT_ prefixed variable, e.g. CONFIT_DEFAULT_FORMAT=toml.
//
// # Loading
//
//	config.Init()
//	s, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	f, err := s.Format()
//
// Load validates the merged result; use [Validate] to check a value by hand.
package config
