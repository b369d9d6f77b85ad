// Package main hosts the ds1054z CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into SCPI
// exchanges with one oscilloscope: direct commands, acquisition control,
// property reads, display captures, network discovery, and an interactive
// shell. It centralizes configuration resolution, device resolution, and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
