package ffmpeg

import (
	"fmt"
	"strconv"
)

func videoEncodeArgs(path string, w, h, fps int, extra []string) []string {
	args := []string{
		"-f", "rawvideo",
		"-pix_fmt", "bgra",
		"-s", fmt.Sprintf("%dx%d", w, h),
		"-r", strconv.Itoa(fps),
		"-i", "-",
		"-pix_fmt", "yuv420p",
	}
	args = append(args, extra...)
	return append(args, "-y", path)
}

// audioEncodeArgs takes no user arguments: encoder_args target the video
// codec and would break the audio stream.
func audioEncodeArgs(path string, sampleRate, channels int) []string {
	return []string{
		"-f", "u16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-i", "-",
		path, "-y",
	}
}

func combineArgs(audio, video, out string) []string {
	return []string{"-i", audio, "-i", video, "-c:v", "copy", "-c:a", "copy", "-y", out}
}

func probeArgs(path string) []string {
	return []string{path, "-hide_banner", "-show_streams"}
}

func videoDecodeArgs(path string) []string {
	return []string{"-i", path, "-f", "image2pipe", "-pix_fmt", "rgb24", "-vcodec", "rawvideo", "-"}
}

func audioDecodeArgs(path string, sampleRate, channels int) []string {
	return []string{
		"-i", path,
		"-f", "u16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-vcodec", "rawaudio",
		"-",
	}
}
