// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package addrcache

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	require := require.New(t)

	addr := netip.MustParseAddr("192.168.0.1")

	before := time.Now()
	e := newEntry(addr)
	after := time.Now()

	require.Equal(addr, e.addr)
	require.False(e.createdAt.Before(before))
	require.False(e.createdAt.After(after))
}
