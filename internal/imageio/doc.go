// Package imageio handles image file loading, saving and metadata.
//
// Decoding supports PNG, JPEG, GIF, BMP, TIFF and WebP; encoding supports the
// same set minus WebP, with the format chosen by file extension. A small
// path-keyed cache backs the inspection tools so repeated reads of the same
// file hit memory instead of disk.
//
// All I/O failures are wrapped with context and are recoverable: a failed
// save never touches in-memory session state.
package imageio
