// Package counter exposes the membership hub over gRPC and HTTP.
//
// The gRPC side implements headcount.v1.SubscriptionCounter:
//
//	srv := grpc.NewServer()
//	counterv1.RegisterSubscriptionCounterServer(srv, counter.NewService(hub, log))
//
// The HTTP side registers JSON, Server-Sent Events and WebSocket routes on a
// router:
//
//	r := router.New[*router.Context]()
//	counter.Register(r, counter.NewHTTP[*router.Context](hub, log))
//
// Every streaming handler releases its subscription on every exit path, so a
// departure broadcast follows as soon as the client goes away.
package counter
