// Package deployer installs the frozen artifact on the local machine.
//
// It loads the artifact description from the dist folder, verifies the
// executable against its recorded checksum and applies it into the target
// folder with an atomic checksum-validated replacement.
package deployer
