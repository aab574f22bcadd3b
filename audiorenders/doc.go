// Package audiorenders provides audio combinators implementing
// kantera.AudioRender.
//
// Every node returns channel-planar samples: the first channel's samples
// for the whole request, then the second channel's. Requests may start at
// negative sample indices; nodes return silence where they are undefined.
package audiorenders
