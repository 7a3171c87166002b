// Package cleaner removes packaging outputs.
//
// It deletes the dist and build folders and stray spec files, tolerating
// their absence. Cleanup never fails: problems are logged and suppressed so
// the command can run repeatedly.
package cleaner
