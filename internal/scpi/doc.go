// Package scpi implements the raw-socket SCPI transport spoken by Rigol
// DS1000Z-series oscilloscopes on TCP port 5555.
//
// The protocol is a synchronous request/response exchange: commands are
// newline-terminated ASCII, text replies are newline-terminated, and binary
// replies use IEEE 488.2 definite-length blocks (#NDDD...data). A Client
// serializes exchanges so at most one request is in flight per connection.
package scpi
