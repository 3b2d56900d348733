// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the identifiers issued by photodir.

It wraps the standard UUID library to generate Version 7 values for browse
sessions and inquiry receipts.

Advantages:

  - Sortable: Naturally ordered by creation time, which keeps session logs readable.
  - Opaque: Carries no information a client could use to guess another session.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

