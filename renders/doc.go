// Package renders provides the image combinators of a kantera render tree.
//
// Every node implements kantera.Render. Nodes that can be point-sampled
// (Plain, Sample, Transform, Frame, ImageRender, Playback, ...) derive
// Render from Sample or override it with an equivalent faster loop. Nodes
// that need neighbourhood or whole-frame access (Filter, Bokeh, Map,
// ColorSampling, Functional) panic with a *kantera.ContractError from
// Sample.
//
// Nodes are immutable after construction and safe for concurrent use.
package renders
