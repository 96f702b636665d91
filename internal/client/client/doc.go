// Package client contains the console's adapters to the outside world.
//
// # Overview
//
// The package provides:
//  1. The remote entity API contract (see the Client interface): list, get,
//     create, update and delete cars, drivers and terms, plus the image
//     attachment endpoints.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that sends the
//     admin credential in the x-admin-password header, uploads images as
//     multipart form data under the "photos" field and decodes the several
//     response shapes the API uses for lists and single objects.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     orphan ledger, wiring an SQLite database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// A request that never got a usable answer is a *TransportError wrapping
// ErrUnavailable (network failure, timeout, 5xx) or ErrUnauthorized (401 and
// 403). An answer with success:false, or a 4xx, is a *RejectionError that
// matches ErrRejected and carries the server's message. A 2xx answer that
// cannot be decoded wraps ErrMalformedResponse.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context; the configured request timeout applies on top of it.
package client
