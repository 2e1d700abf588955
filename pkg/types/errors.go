// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// ErrIO marks failures to read a source document, load a page template, or
// write an output page. Callers test for it with errors.Is.
var ErrIO = errors.New("i/o failure")
