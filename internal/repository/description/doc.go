// Package description implements persistence for the artifact Description.
//
// The FileRepository stores and loads the description as YAML on disk and
// exposes a Repository interface that the packaging and deploy services
// depend on.
package description
