// Package script implements the S-expression language used to describe
// render trees.
//
// A script is read into forms, macro-expanded one top-level form at a time
// and evaluated strictly, left to right, in a single goroutine. Native
// bindings construct render and audio nodes; the conventional outputs are
// the symbols video and audio:
//
//	(def framerate 24)
//	(def video
//	  (composite
//	    [(plain (rgb 0 0 0)) "none"]
//	    [(bokeh (plain (hex "#3af")) 8 (path 0 [1 8])) "normal" 0.5]))
//
// Errors carry the source span of the offending form.
package script
