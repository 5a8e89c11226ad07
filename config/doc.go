// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Every entry point receives an explicit AppConfig value; the only implicit
// default is the current working directory as the photo directory.
package config
