// Package server provides the request/response boundary for Strada routers.
//
// The package has three pieces:
//
//   - Ctx, the per-request context handed to route handlers. It wraps the
//     standard http.ResponseWriter and *http.Request and adds status
//     tracking plus small response helpers (Text, JSON, HTML, Redirect).
//   - Server, a multi-listener HTTP server. Each listener owns its own
//     address and handler, so independently built routers can be bound to
//     distinct ports and selected purely by the port a request arrives on.
//   - RouteInfo, a context carrier that lets outer middleware observe which
//     route pattern a request ultimately matched.
//
// # Usage
//
//	r, _ := router.New(...)
//
//	srv := server.NewServer(server.WithLogger(logger))
//	srv.Handle(":8080", r)
//	srv.Handle(":8081", adminRouter)
//	err := srv.Run(ctx)
package server
