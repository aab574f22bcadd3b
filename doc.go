// Package kantera is a compositional renderer for time-varying 2D raster
// images and multi-channel audio.
//
// # Overview
//
// A scene is a tree of renders: pure functions from normalized canvas
// coordinates, time and reference resolution to a pixel value, or from a
// sample range to a block of audio. The root package holds the primitives
// (pixels, vectors, paths, timed signals, images and buffers), the Render
// and AudioRender contracts, and the evaluators that drive a tree over a
// frame range. Combinators live in renders/ and audiorenders/; the script
// runtime that builds trees from text lives in script/.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/kantera"
//	    "github.com/gogpu/kantera/renders"
//	)
//
//	video := renders.NewComposite(
//	    renders.Layer(renders.NewPlain(kantera.Red), renders.BlendNone()),
//	    renders.Layer(renders.NewPlain(kantera.Blue), renders.BlendNormal(kantera.Const(0.5))),
//	)
//	ro := kantera.Canvas(640, 360, kantera.Range{Start: 0, End: 30}, 30)
//	pixels := kantera.RenderToBufferParallel(ro, video)
//
// # Coordinate System
//
//   - Pixel (x, y) of a request samples at u = x/ResX, v = y/ResY
//   - Origin at top-left, v increases down
//   - Frame f is at time f/Framerate seconds
//   - Buffers are frame-major, then row-major, then column
//
// # Concurrency
//
// Render nodes are immutable after construction and safe for concurrent
// use. RenderToBufferParallel splits the window into column strips and
// renders them on a worker pool; nothing is shared between strips except
// the tree itself.
package kantera

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
