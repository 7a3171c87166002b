// Package artifact contains core domain types for packaged executables.
//
// It defines Description (what was built, by whom and with which checksum)
// and Actor (who ran the packaging workflow) with Clone helpers to avoid
// leaking internal references, plus checksum calculation and verification
// for produced files.
package artifact
