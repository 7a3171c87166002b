// Package packager drives the build of a single-file executable from the
// target Python project.
//
// It installs dependencies, checks the platform gate, invokes the freezer,
// removes intermediate spec files and records an artifact description with
// checksums next to the produced executable. A marker file guards against
// concurrent packaging runs.
package packager
