// Package config defines packaging workflow settings used by the commands
// and provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the project layout, the produced artifact name and
// the external tool command lines.
package config
