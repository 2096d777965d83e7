// Package overlay runs the per-frame lifecycle of the region-overlay node.
//
// A Node follows the host's open/render/close protocol:
//
//	Unopened -> Built -> Detected -> Rendering -> Closed
//
// Open builds the detector image from the frame, runs the classifier once (if
// one is configured), freezes the resulting region.Set and releases the
// detector image. Only then may Engine be called, any number of times, in any
// order and from any number of goroutines. Close releases the classifier and
// forgets the frame; the node can be opened again afterwards.
//
// # Errors
//
// Open reports three classes of outcome:
//   - ErrClassifierLoad: not returned. The cascade could not be loaded or run;
//     the node renders in passthrough mode and Warning() returns the cause.
//   - ErrSourceImage: returned. The frame could not be materialized; nothing may
//     be rendered for it.
//   - ErrAbortedBuild: returned. The context was cancelled while rows were
//     being acquired; the frame is treated as never opened.
//
// Calling Engine on a node that has not been opened successfully is a
// programming error and panics.
package overlay
