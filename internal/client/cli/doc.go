// Package cli implements the interactive terminal client: the splash
// bootstrap, the two-step login wizard, and the session commands.
package cli
