// Package cmd implements the osint-shell command line.
//
// # Architecture
//
//   - root.go: App struct, cobra command setup, flags and startup
//   - shell.go: wiring of the registry, dispatcher and investigator
//   - interactive.go: go-prompt REPL with completion and history
//   - input.go: line reader over stdin for piped input and command prompts
//
// # Startup
//
// The target username is the single positional argument. Startup validates
// the configuration, resolves the backend session, opens the response cache
// and loads the target profile; any failure there exits with status 1.
// With --command the named command runs once and the process exits 0
// whatever its outcome. Otherwise the banner is printed and the shell reads
// commands until quit, interrupt or end of input.
//
// # Usage
//
//	func main() {
//	    cmd.Execute()
//	}
package cmd
