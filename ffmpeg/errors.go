package ffmpeg

import "errors"

var (
	// ErrProbeParse is returned when ffprobe output cannot be understood.
	ErrProbeParse = errors.New("ffmpeg: cannot parse probe output")

	// ErrNoStream is returned when a file has no stream of the wanted kind.
	ErrNoStream = errors.New("ffmpeg: no matching stream")

	// ErrFrameSize is returned when pushed data does not hold whole frames
	// or whole sample groups.
	ErrFrameSize = errors.New("ffmpeg: data is not a whole number of frames")

	// ErrClosed is returned by Push after Close.
	ErrClosed = errors.New("ffmpeg: encoder closed")
)
