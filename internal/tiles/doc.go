// Package tiles retrieves tile images over HTTP and classifies them.
//
// A Fetcher issues one GET per tile request against a single shared client,
// reads the full body, rejects payloads that match the upstream's known
// placeholder signature, decodes the rest, and applies the post-decode
// signature check. Fetch runs every request concurrently and waits for all
// of them before returning, even after one has already failed: there is no
// sibling cancellation and no retry.
//
// # Invalid Tiles
//
// The upstream tile source serves a fixed placeholder when it has no data.
// InvalidTilePolicy captures that as two independent predicates:
//   - RejectsPayload: the raw body length equals ByteLength (checked before
//     decoding; a matching payload is never decoded)
//   - RejectsDimensions: the decoded width and height both equal Edge
//
// Both lead to an *InvalidTileError.
//
// # Ordering
//
// Results are associated with their request index before being joined, so
// Fetch returns tiles in input order regardless of completion order.
//
// # Observing Progress
//
// Progress is reported to an Observer. It is a pure side channel; a nil
// Observer is replaced by NopObserver.
package tiles
