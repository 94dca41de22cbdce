// Package version holds the application version stamped at build time.
package version

// Version is overridden via -ldflags at release build time.
var Version = "dev"
