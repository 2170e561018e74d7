// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the write endpoints of the chamber-stats API.

# Admin Key

Imports may be protected by a shared admin key, configured with
-admin-key or ADMIN_KEY and presented in the X-Admin-Key header:

	err := auth.ValidateAdminKey(r.Header.Get(auth.AdminKeyHeader), cfg.AdminKey)

An empty configured key disables the check. Read endpoints are never
guarded.

# Fingerprints

The key itself is never logged. Fingerprint returns a short HMAC-SHA256
digest that identifies which key a server was started with:

	slog.Info("Admin key configured", "fingerprint", auth.Fingerprint(key))
*/
package auth
