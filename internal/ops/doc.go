// Package ops is the operation library: a registry of named, parameterized
// pure transforms on images.
//
// Every operation declares its parameters up front (type, range, enum values,
// default), and the registry validates arguments against those declarations
// before the operation runs. Out-of-range values are rejected with
// ErrInvalidParameter instead of being clamped, so the same inputs always
// produce the same outputs. Unknown operation names fail with
// ErrUnknownOperation.
//
// Operations never mutate their input image; they allocate and return a new
// one. This is what makes history snapshots cheap: a snapshot is just a
// reference.
//
// The pixel work is delegated to github.com/anthonynsimon/bild and
// github.com/disintegration/imaging wherever those libraries cover the
// operation; hand-rolled per-pixel loops exist only for effects neither
// library provides (temperature, posterize, equalize, psychedelic, the Canny
// edge map and the Lab-space tint).
package ops
