// Package endian provides byte order utilities for NPY element encoding.
//
// The EndianEngine interface combines binary.ByteOrder and binary.AppendByteOrder
// so that header fields and element payloads can be written through one value.
// Order is the compact, comparable form stored in element type descriptors.
//
// # Basic Usage
//
//	engine := endian.Native().Engine()
//	buf = engine.AppendUint16(buf, headerLen)
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Order identifies the byte order of multi-byte element values.
type Order uint8

const (
	Little Order = iota // Little is least-significant byte first.
	Big                 // Big is most-significant byte first.
)

// String returns "little" or "big".
func (o Order) String() string {
	if o == Big {
		return "big"
	}

	return "little"
}

// Engine returns the EndianEngine writing values in this order.
func (o Order) Engine() EndianEngine {
	if o == Big {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// Marker returns the descriptor byte order character for multi-byte types: '<' or '>'.
func (o Order) Marker() byte {
	if o == Big {
		return '>'
	}

	return '<'
}

// Native returns the host byte order.
func Native() Order {
	if cpu.IsBigEndian {
		return Big
	}

	return Little
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// SwapInPlace reverses the byte order of every unit-sized word in buf.
// Units of 0 or 1 byte and trailing partial words are left untouched.
func SwapInPlace(buf []byte, unit int) {
	if unit <= 1 {
		return
	}

	for off := 0; off+unit <= len(buf); off += unit {
		w := buf[off : off+unit]
		for i, j := 0, unit-1; i < j; i, j = i+1, j-1 {
			w[i], w[j] = w[j], w[i]
		}
	}
}
