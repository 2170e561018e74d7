// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package profile loads chamber profiles: the seat count, author and group
// keywords, status vocabulary and ranking sizes of one legislature.
package profile
