// Package app contains the command logic of the hrg tool: converting,
// validating, inspecting and archiving graph documents. It is decoupled from
// any specific entrypoint like a CLI.
package app
