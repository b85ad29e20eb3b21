// Package giantswarm provides types, interfaces and helpers for working
// with the Giant Swarm API.
//
// # Overview
//
// The package defines the Client interface, the domain types returned by
// it (Application, ApplicationStatus, InstanceStatistics, User and so on)
// and the collaborators a client is built from: Cache, EnvironmentStore,
// TokenPersister and Logger. A concrete client is provided by the
// gsclient package.
//
// # Response envelope
//
// Every API body carries a "status_code" next to its "data". A call
// succeeds only when the transport status is 2xx and the status_code is
// the one the operation expects (see EnvelopeStatus). Anything else is an
// *Error whose Kind names the failure:
//
//	if errors.Is(err, giantswarm.ErrLoginRequired) { ... }
//	kind, ok := giantswarm.KindOf(err)
//
// Client methods do not return these errors. They log them and return
// false or an empty value.
//
// # Caching
//
// Read operations replay snapshots from a Cache. NewCacheFromConfig and
// CacheBuilder create memory, SQLite and NATS JetStream backends, and
// CacheChain layers them:
//
//	l2, err := giantswarm.NewCacheBuilder().
//	  WithType(giantswarm.CacheTypeSQLite).
//	  WithSQLitePath("/var/cache/giantswarm.db").
//	  Build(ctx)
//	cache := giantswarm.NewCacheChain(giantswarm.NewMemoryCache(100), l2)
package giantswarm
