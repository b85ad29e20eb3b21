// Package gsclient is the entry point for constructing a Giant Swarm API
// client that implements the giantswarm.Client interface.
//
// It normalizes the endpoint and fills in the default collaborators: a
// no-op response cache, a SQLite environment store and a no-op logger.
// Most applications import gsclient to build a client and then use the
// returned giantswarm.Client directly.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
//	  "github.com/fivetwenty-io/giantswarm/pkg/gsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := gsclient.New(ctx, &giantswarm.Config{
//	    Endpoint:     "api.giantswarm.io/v1",
//	    DatabasePath: "/home/me/.giantswarm/environments.db",
//	    Cache:        giantswarm.NewMemoryCache(100),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  if !cli.Login(ctx, "me@example.com", "secret") {
//	    log.Fatal("login failed, see log output")
//	  }
//
//	  for _, company := range cli.GetCompanies(ctx) {
//	    log.Println(company)
//	  }
//	}
//
// # Failures
//
// Client methods report failure as false or an empty value. The cause is
// written to Config.Logger, so pass a logger when the reason matters.
//
// # Helpers
//
// NewWithEndpoint and NewWithToken wrap New for the common cases of a
// fresh session and a restored one.
package gsclient
