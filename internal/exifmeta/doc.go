// Package exifmeta reads and rewrites the raw bytes carried in a JPEG XL
// "Exif" container box. It plays the role the original codec's MicroExif
// helper played: a thin layer over a TIFF/EXIF byte stream. Decode extracts
// orientation and resolution after byte-order detection; DecodeAll walks
// every tag goexif can decode.
package exifmeta
