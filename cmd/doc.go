// Package cmd implements the CLI commands for the operator console.
//
// # Architecture
//
//   - root.go: App struct, cobra root command, one-shot execution
//   - console.go: interactive REPL on go-prompt with program completion
//   - serve.go: the gateway command, graceful shutdown on SIGINT/SIGTERM
//   - config_cmd.go: config init
//
// # Key Components
//
// ## App
//
// The App struct holds the configuration filled by flags. Configuration is
// layered in config.Load, so flags win over the environment, which wins over
// the config file.
//
// ## ConsoleSession
//
// Wraps a terminal.Session for the REPL: exit words, Ctrl+C/Ctrl+D and a
// per-line timeout. Every other line goes to the interpreter.
//
// # Usage
//
//	func main() {
//	    cmd.Execute()
//	}
package cmd
