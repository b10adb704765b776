// Package cli implements the interactive MindCard terminal client.
//
// The entry point is App, constructed by NewApp and driven by Run, which
// starts a read–eval–print loop over stdin.
//
// Prompt & Commands
//
// The prompt shows the current session status and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - list           — list decks
//	  - practice <n>   — run a timed practice session over deck n
//	  - create         — create a new deck interactively
//	  - edit <n>       — edit a deck's title and cards
//	  - delete <n>     — delete a deck
//	  - stats          — show recent practice results
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Decks are addressed either by their 1-based position in the last
// "list" output or by their server id.
//
// Command handlers log their own errors; the REPL loop ignores returned
// errors to stay resilient and focused on I/O.
package cli
