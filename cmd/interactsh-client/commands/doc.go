// Package commands defines the interactsh-client CLI and wires dependencies
// for subcommands.
//
// Commands
//
//   - run         Register, stream interactions until interrupted, then
//     deregister (or save the session with --session-file)
//   - poll        Poll a saved session once
//   - deregister  Deregister a saved session and delete the file
//   - servers     List the default public servers
//
// # Implementation
//
// The root command loads configuration (TOML file, .env, INTERACTSH_*
// variables), applies any flags set on the command line, and builds an
// app.Wire before a subcommand runs.
package commands
