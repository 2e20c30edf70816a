// Package reqctx carries request-scoped values through context.Context:
// request metadata, the verified console claims and the store a request
// was resolved to. Services still take the store id as an explicit
// argument; the context copy feeds logs and spans.
package reqctx
