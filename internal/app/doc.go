// Package app wires the client for the CLI.
//
// LoadConfig merges an optional TOML file, a .env file and INTERACTSH_*
// environment variables into Config. NewWire turns a Config into the
// collaborators a command needs (session settings, metrics, session file
// store), and App drives a session: register or restore, stream
// interactions to an io.Writer, then deregister or persist.
package app
