// Package capi is the marshaling layer behind the C-ABI surface of the
// engine: a host in another language drives widgets through numeric
// event codes and exchanges strings as NUL-terminated UTF-8 in
// caller-supplied, length-capped buffers.
//
// The package is pure Go. A cgo shim (or purego host) maps exported C
// symbols onto these functions one-to-one; everything that can go wrong
// with buffers and encodings is handled here so the shim stays trivial.
//
// Marshaling rules:
//   - Inbound strings are NUL-terminated UTF-8; malformed UTF-8 is a
//     host contract violation and decodes as the empty string.
//   - Outbound strings are truncated to the buffer, never overflowed,
//     always NUL-terminated, and never split a multi-byte encoding.
package capi
