// SPDX-License-Identifier: MIT
// Package: fragevo/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; branch with errors.Is.
//   • Constructors wrap lower-level errors with their own context.
//   • Option constructors panic on meaningless input; constructors never do.

package builder

import "github.com/pkg/errors"

// ErrTooFewVertices indicates a size parameter below its minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrNoScaffold indicates that the library has no usable scaffold.
var ErrNoScaffold = errors.New("builder: no scaffold")

// ErrNilLibrary is returned by BuildGraph without a fragment library.
var ErrNilLibrary = errors.New("builder: nil fragment library")

// ErrConstructFailed indicates that a constructor could not complete.
var ErrConstructFailed = errors.New("builder: construction failed")
