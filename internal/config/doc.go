// Package config assembles the tracker's runtime configuration.
//
// Layers are applied in order, each non-zero field overriding the ones
// before it: built-in defaults, APP_/STORAGE_/SERVER_/ADAPTER_/WORKERS_
// environment variables, command-line flags and finally the JSON file
// named by -c or CONFIG. The merged result is checked with
// go-playground/validator. Start with [GetStructuredConfig].
package config
