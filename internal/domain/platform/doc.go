// Package platform implements the host gate that restricts packaging to
// supported operating systems and architectures.
//
// The gate is a pure predicate over the OS, PROCESSOR_ARCHITECTURE and
// PROCESSOR_ARCHITEW6432 environment values, so it can be evaluated against
// any host description without touching the process environment.
package platform
