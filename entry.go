// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package addrcache

import "time"

// entry pairs an address with the moment it was offered. Storing the
// creation time rather than a deadline lets SetTTL re-age existing
// entries without touching them.
type entry[A comparable] struct {
	addr      A
	createdAt time.Time
}

func newEntry[A comparable](addr A) *entry[A] {
	return &entry[A]{
		addr:      addr,
		createdAt: time.Now(),
	}
}
