// Package manifest reads the packaged project's pyproject file.
//
// The workflow consults it for the artifact name and version and the info
// command prints a summary of dependencies, console scripts and locally
// sourced packages.
package manifest
