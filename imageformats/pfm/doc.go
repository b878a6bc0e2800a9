// Package pfm implements a read-only Portable Float Map (PFM) decoder: a
// trivial ASCII-header-plus-raw-float HDR container, standing in for the
// original's small PFM example alongside the full JPEG XL codec.
package pfm
