// Package shell implements the interactive SCPI read-eval loop.
//
// Each input line is forwarded to the device: lines containing the SCPI
// query marker '?' go through the binary-safe query path and have their
// response printed, everything else is a plain write. The loop ends on
// "quit", "exit", end of input, or context cancellation (Ctrl-C).
package shell
