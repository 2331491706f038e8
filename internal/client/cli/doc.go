// Package cli provides the interactive vegtrack command-line client.
//
// It wires configuration, the local SQLite cache, the HTTP API client, and an
// interactive REPL that works offline-first: entries recorded while logged out
// stay in the local cache and are reconciled with the server after login.
//
// Key features:
//   - Signup / Login / Logout
//   - Add / List / Edit / Delete price entries
//   - Name suggestions against the shared catalog
//   - Refresh from the catalog and manual sync
//   - CSV export of a vegetable's price history
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
