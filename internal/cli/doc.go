// Package cli defines the Cobra command tree for the letsyolo CLI. Each file
// registers one top-level command with the root command. Commands delegate to
// the internal packages for detection, toggling and secrets, and only handle
// flag parsing, output formatting and user interaction.
package cli
