// Package cli implements the interactive NoteSphere client: a readline
// REPL dispatching to the domain services. It owns only presentation;
// validation, retry, and reconciliation live in the services layer.
package cli
