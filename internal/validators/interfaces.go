// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks records read from the spreadsheet before the
// robot types them into the dashboard.
//
// A [Validator] accepts any value and an optional list of field names. With
// no fields the whole value is checked; otherwise only the named fields are.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
