// Package router implements typed radix-tree request routing for Strada.
//
// The router provides:
//   - A prefix-compressed tree per HTTP method, built once and immutable
//     afterwards
//   - %-specifier placeholders with typed extraction (%s, %i, %u, %f, %b,
//     %c, %O, and %% for a literal percent)
//   - Depth-first matching with backtracking, literal before placeholder
//   - A declarative construction DSL with method groups and nested mounts
//
// # Patterns
//
// A pattern is literal text interleaved with placeholders:
//
//	/users/%u               → one uint64 value
//	/foo/%s/%i              → a string and an int64
//	/objects/%O             → a GUID, accepted in hyphenated, bare-hex, or
//	                          compact base64 form
//
// Placeholders other than %c consume the path up to the next separator;
// %c consumes exactly one character.
//
// # Construction
//
// Routers are declared, not mutated:
//
//	r, err := router.New(
//	    router.Get(
//	        router.Route("/", index),
//	        router.Route("/foo/%s/%i", showItem),
//	        router.Mount("/api",
//	            router.Route("/test", apiTest),
//	            router.Mount("/v2", router.Route("/admin", admin)),
//	        ),
//	    ),
//	    router.Post(router.Route("/foo/%s/%i", updateItem)),
//	    router.NotFound(fallback),
//	)
//
// Every structural problem — malformed specifiers, duplicate terminals,
// conflicting placeholders, handler signature mismatches — is an error from
// New. At request time a path either matches or the not-found handler runs;
// there are no request-time routing errors.
//
// # Handlers
//
// A typed handler takes the context plus one argument per placeholder:
//
//	func showItem(ctx server.Ctx, name string, id int64) (bool, error) {
//	    return true, ctx.JSON(map[string]any{"name": name, "id": id})
//	}
//
// Returning false declines the request and sends it to the not-found
// handler; the tree is never searched again after a handler ran.
package router
