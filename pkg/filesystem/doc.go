// Package filesystem provides filesystem implementations for dupkeep.
//
// This package contains implementations of the types.FS interface,
// plus the streaming copy helper used by the action engine.
package filesystem
