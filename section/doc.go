// Package section defines the NPY preamble: magic string, format version,
// header length field and the header dictionary.
//
// # Layout
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Magic (6 bytes): 0x93 'N' 'U' 'M' 'P' 'Y'                │
//	│ Version (2 bytes): major, minor                          │
//	│ Header length (uint16 LE for 1.0, uint32 LE for 2.0/3.0) │
//	│ Header dict, space padded, terminated by '\n'            │
//	├──────────────────────────────────────────────────────────┤
//	│ Element bytes                                            │
//	└──────────────────────────────────────────────────────────┘
//
// The preamble length is always a multiple of 64 so that the element bytes
// start on an aligned offset. The header dict is a Python literal:
//
//	{'descr': '<f8', 'fortran_order': True, 'shape': (2, 3), }
//
// Version 1.0 is written whenever the padded header fits its 16-bit length
// field; 2.0 is used otherwise. Version 3.0 is accepted on read only.
package section
