// Package config loads the CLI's runtime settings by layering defaults,
// an optional JSON file, and command-line flags, in that order.
package config
