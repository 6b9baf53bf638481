// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks vault requests before they reach the pipeline.
//
// [DocumentValidator] rejects malformed uploads, retrievals, listings and
// content hashes so the crypto and storage layers only ever see well-formed
// input. Field names restrict a check to part of a request, e.g. only the
// password of a retrieve-by-hash call.
package validators

import "context"

// Validator validates v, optionally restricted to the named fields.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
