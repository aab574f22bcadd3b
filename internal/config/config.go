// Package config reads the kantera.toml project file shared by the
// command line tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/kantera/ffmpeg"
)

// DefaultFile is the project file looked up in the working directory.
const DefaultFile = "kantera.toml"

// Config holds project settings. Zero values mean "use the default".
type Config struct {
	FFmpeg       string `toml:"ffmpeg"`
	FFprobe      string `toml:"ffprobe"`
	EncoderArgs  string `toml:"encoder_args"`
	Workers      int    `toml:"workers"`
	BufferFrames int    `toml:"buffer_frames"`
	Output       string `toml:"output"`
}

// Load reads path. A missing file is not an error when optional is set;
// unknown keys always are.
func Load(path string, optional bool) (Config, error) {
	var c Config
	p, err := homedir.Expand(path)
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return c, fmt.Errorf("config: %s: %s", p, strict.String())
		}
		return c, fmt.Errorf("config: %s: %w", p, err)
	}
	return c, c.expand()
}

func (c *Config) expand() error {
	for _, s := range []*string{&c.FFmpeg, &c.FFprobe, &c.Output} {
		p, err := homedir.Expand(*s)
		if err != nil {
			return err
		}
		*s = p
	}
	return nil
}

// Merge overlays the non-zero fields of o.
func (c Config) Merge(o Config) Config {
	if o.FFmpeg != "" {
		c.FFmpeg = o.FFmpeg
	}
	if o.FFprobe != "" {
		c.FFprobe = o.FFprobe
	}
	if o.EncoderArgs != "" {
		c.EncoderArgs = o.EncoderArgs
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.BufferFrames != 0 {
		c.BufferFrames = o.BufferFrames
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	return c
}

// BinaryOptions selects the executables and render chunking but leaves
// out encoder arguments, which only apply to video.
func (c Config) BinaryOptions() []ffmpeg.Option {
	return []ffmpeg.Option{
		ffmpeg.WithBinary(c.FFmpeg),
		ffmpeg.WithProbeBinary(c.FFprobe),
		ffmpeg.WithBufferFrames(c.BufferFrames),
		ffmpeg.WithWorkers(c.Workers),
	}
}

// FFmpegOptions converts every encoder setting for the ffmpeg package.
func (c Config) FFmpegOptions() []ffmpeg.Option {
	opts := c.BinaryOptions()
	if c.EncoderArgs != "" {
		opts = append(opts, ffmpeg.WithExtraArgs(c.EncoderArgs))
	}
	return opts
}
