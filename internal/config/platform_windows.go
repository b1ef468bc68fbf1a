//go:build windows

package config

// DefaultEnvTerminators ends an `$env:` variable name: whitespace, both
// slash characters and the Windows path-list separator.
const DefaultEnvTerminators = " \t\r\n\v\f\\/;"

const homeEnvVar = "USERPROFILE"
