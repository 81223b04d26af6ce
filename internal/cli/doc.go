// Package cli wires the hrg command tree. It binds global flags and HRG_*
// environment variables into the app configuration and maps failures to
// process exit codes: 2 for usage errors and 1 for failed commands.
package cli
