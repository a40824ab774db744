// Package main hosts the Slate CLI entrypoint and command graph.
//
// The Cobra-based command tree loads a shot list, runs the continuity
// analyzer over it, manages dismissed issues, and drives the opt-in style
// tracker. It centralizes configuration resolution, storage opening, and
// structured logging setup so subcommands can focus on presentation.
//
// Keep this package lean: behavior belongs in the internal packages and is
// only surfaced here through commands and flags.
package main
