// Package api provides the HTTP driving adapter. It exposes the annotation
// service as a small JSON API plus a browser form that mirrors the
// original paste-and-annotate workflow.
package api
