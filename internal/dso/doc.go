// Package dso models a Rigol DS1054Z-family oscilloscope on top of the SCPI
// transport: acquisition control, typed property reads, and display capture.
//
// Property access goes through an enumerated registry rather than dynamic
// dispatch so unknown names fail with ErrUnknownProperty and the set of
// supported properties is discoverable for help text.
package dso
