// Package filter holds the convolution kernels and blur loops behind the
// Filter and Bokeh render nodes.
//
// The loops work on expanded windows: the caller renders its child with a
// margin around the requested region and the filter reads that margin, so
// no edge handling is needed here.
package filter
