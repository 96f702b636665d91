// Package cli provides the interactive rental admin console.
//
// It wires configuration, the orphan ledger database, the image staging
// store, the admin API client and an interactive REPL. The REPL shows one tab
// per entity kind (cars, drivers, terms) and at most one open form, which is
// edited field by field and saved with submit or discarded with cancel.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
