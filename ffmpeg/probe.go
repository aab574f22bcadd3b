package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// StreamInfo is the subset of an ffprobe stream section that kantera uses.
type StreamInfo struct {
	CodecType  string
	Width      int
	Height     int
	Framerate  int
	FrameNum   int
	Channels   int
	SampleRate int
}

// ProbeResult lists the streams of a media file in file order.
type ProbeResult struct {
	Streams []StreamInfo
}

// Video returns the first video stream.
func (r *ProbeResult) Video() (StreamInfo, bool) { return r.first("video") }

// Audio returns the first audio stream.
func (r *ProbeResult) Audio() (StreamInfo, bool) { return r.first("audio") }

func (r *ProbeResult) first(kind string) (StreamInfo, bool) {
	for _, s := range r.Streams {
		if s.CodecType == kind {
			return s, true
		}
	}
	return StreamInfo{}, false
}

// Probe runs ffprobe on path.
func Probe(ctx context.Context, path string, opts ...Option) (*ProbeResult, error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	data, err := output(ctx, o.ffprobe, probeArgs(path))
	if err != nil {
		return nil, err
	}
	return ParseProbe(bytes.NewReader(data))
}

// ParseProbe reads the key=value transcript printed by
// `ffprobe -show_streams`. Keys outside a [STREAM] section and keys it does
// not know are ignored. A frame count of N/A reads as 1.
func ParseProbe(r io.Reader) (*ProbeResult, error) {
	var (
		res  ProbeResult
		cur  *StreamInfo
		line int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch text {
		case "[STREAM]":
			if cur != nil {
				return nil, fmt.Errorf("%w: line %d: nested [STREAM]", ErrProbeParse, line)
			}
			cur = &StreamInfo{}
			continue
		case "[/STREAM]":
			if cur == nil {
				return nil, fmt.Errorf("%w: line %d: [/STREAM] without [STREAM]", ErrProbeParse, line)
			}
			res.Streams = append(res.Streams, *cur)
			cur = nil
			continue
		}
		if cur == nil {
			continue
		}
		key, val, ok := strings.Cut(text, "=")
		if !ok {
			continue
		}
		if err := cur.set(key, val); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s: %v", ErrProbeParse, line, key, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		return nil, fmt.Errorf("%w: unterminated [STREAM]", ErrProbeParse)
	}
	return &res, nil
}

func (s *StreamInfo) set(key, val string) error {
	var err error
	switch key {
	case "codec_type":
		s.CodecType = val
	case "width":
		s.Width, err = probeInt(val, 0)
	case "height":
		s.Height, err = probeInt(val, 0)
	case "nb_frames":
		s.FrameNum, err = probeInt(val, 1)
	case "channels":
		s.Channels, err = probeInt(val, 0)
	case "sample_rate":
		s.SampleRate, err = probeInt(val, 0)
	case "r_frame_rate":
		s.Framerate, err = probeRate(val)
	}
	return err
}

func probeInt(val string, na int) (int, error) {
	if val == "N/A" {
		return na, nil
	}
	return strconv.Atoi(val)
}

// probeRate reads N/D and rounds to whole frames per second.
func probeRate(val string) (int, error) {
	if val == "N/A" {
		return 0, nil
	}
	num, den, ok := strings.Cut(val, "/")
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, err
	}
	if !ok {
		return n, nil
	}
	d, err := strconv.Atoi(den)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, nil
	}
	return int(math.Round(float64(n) / float64(d))), nil
}
