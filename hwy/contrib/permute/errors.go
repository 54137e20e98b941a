// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package permute

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is wrapped by every error reporting mismatched buffer or
	// vector lengths. Shape errors are returned before any row is moved.
	ErrShape = errors.New("permute: invalid shape")

	// ErrContract is wrapped by errors from Metadata.Check, which reports
	// metadata that has valid lengths but does not describe a padded
	// permutation (non-contiguous bins, undersized padding, bad indices).
	ErrContract = errors.New("permute: metadata contract violated")
)

func shapeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrShape}, args...)...)
}

func contractErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrContract}, args...)...)
}

func assertEqual(what string, a, b int) error {
	if a != b {
		return shapeErrorf("%s: expected dimensions to be equal but got %d and %d", what, a, b)
	}
	return nil
}
