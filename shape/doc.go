// Package shape rasterizes vector paths into images.
package shape
