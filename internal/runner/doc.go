// Package runner provides execution of external packaging tools.
//
// Workflow steps describe tool invocations as Command values and execute
// them through the Runner interface, so tests can substitute a fake without
// spawning processes. ExecRunner is the production implementation backed
// by os/exec.
package runner
