// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Lists are requested with "offset" and "count" query parameters. The window is
// clamped to the collection so a list request never fails because of its bounds.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultCount is the number of items returned if not specified.
	DefaultCount = 20
	// MaxCount is the upper bound for items per request.
	MaxCount = 100
)

// Params holds the parsed offset and count from a request's query string.
type Params struct {
	Offset int
	Count  int
}

// Meta is the window metadata included in API list responses.
type Meta struct {
	Offset int `json:"offset"`
	Count  int `json:"count"`
	Total  int `json:"total"`
}

// FromRequest parses "offset" and "count" query parameters from an HTTP request.
//
// # Clamping
//
// A missing or malformed count falls back to [DefaultCount]; counts above
// [MaxCount] are capped. Offsets are clamped later by [Bounds].
func FromRequest(r *http.Request) Params {
	offset := parseIntParam(r, "offset", 0)
	count := parseIntParam(r, "count", DefaultCount)

	if count > MaxCount {
		count = MaxCount
	}

	return Params{Offset: offset, Count: count}
}

// Bounds returns the half-open window [lo, hi) of a collection of size n.
//
// lo is clamped to [0, n-1] and hi to [0, n]. A negative count yields an empty window.
func (p Params) Bounds(n int) (lo, hi int) {
	lo = clamp(p.Offset, 0, max(n-1, 0))
	hi = clamp(p.Offset+p.Count, 0, n)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Slice returns the window of items selected by p together with its metadata.
func Slice[T any](items []T, p Params) ([]T, Meta) {
	lo, hi := p.Bounds(len(items))
	window := items[lo:hi]
	return window, Meta{Offset: lo, Count: len(window), Total: len(items)}
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
