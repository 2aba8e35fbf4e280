package utils

import "time"

const (
	// CacheExpiration bounds how stale cached circle-membership lookups may
	// get before the read path re-queries.
	CacheExpiration = 5 * time.Minute

	// MembershipCacheSize is the LRU capacity for visibility lookups.
	MembershipCacheSize = 4096

	// MaxPhotoSize caps item photo uploads.
	MaxPhotoSize = 10 * 1024 * 1024
)
