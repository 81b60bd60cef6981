//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/pagetree --repository.default-branch master --repository.path /

// Package pagetree compiles nested component documents into flat, address
// ordered ADD operations and keeps a cached catalog of component metadata
// reconciled against a live component registry.
package pagetree
