// Package ffmpeg connects renders to the ffmpeg and ffprobe executables.
//
// Encoders stream raw frames or samples to an ffmpeg child process over
// its stdin; decoders read raw output from its stdout. Nothing here links
// against libav: only the command line contract of the two tools is used.
//
// Argument lists are built by pure functions so they can be inspected
// without the binaries installed.
package ffmpeg
