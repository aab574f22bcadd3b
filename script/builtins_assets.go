package script

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/audiofile"
	"github.com/gogpu/kantera/audiorenders"
	"github.com/gogpu/kantera/ffmpeg"
	"github.com/gogpu/kantera/renders"
	"github.com/gogpu/kantera/text"
)

func defineAssets(env *Env) {
	define(env, "load_image", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 3); err != nil {
			return Nil, err
		}
		path, err := it.pathArg(args, 0)
		if err != nil {
			return Nil, err
		}
		img, err := kantera.LoadImage(path)
		if err != nil {
			return Nil, err
		}
		if len(args) > 1 {
			if err := arity(args, 3, 3); err != nil {
				return Nil, err
			}
			w, err := argInt(args, 1)
			if err != nil {
				return Nil, err
			}
			h, err := argInt(args, 2)
			if err != nil {
				return Nil, err
			}
			if img, err = kantera.ResizeImage(img, w, h); err != nil {
				return Nil, err
			}
		}
		return ImageValue(img), nil
	})
	define(env, "load_font", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		path, err := it.pathArg(args, 0)
		if err != nil {
			return Nil, err
		}
		f, err := text.LoadFont(path)
		if err != nil {
			return Nil, err
		}
		return FontValue(f), nil
	})
	define(env, "load_audio", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 2); err != nil {
			return Nil, err
		}
		path, err := it.pathArg(args, 0)
		if err != nil {
			return Nil, err
		}
		interp, err := audioInterp(args, 1)
		if err != nil {
			return Nil, err
		}
		buf, err := audiofile.Load(path)
		if err != nil {
			return Nil, err
		}
		return AudioValue(audiorenders.NewBufferRender(buf, interp)), nil
	})
	define(env, "import_video", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		path, err := it.pathArg(args, 0)
		if err != nil {
			return Nil, err
		}
		buf, err := ffmpeg.ImportVideo(it.Context(), path)
		if err != nil {
			return Nil, err
		}
		return RenderValue(renders.NewPlayback(buf)), nil
	})
	define(env, "import_audio", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 2); err != nil {
			return Nil, err
		}
		path, err := it.pathArg(args, 0)
		if err != nil {
			return Nil, err
		}
		interp, err := audioInterp(args, 1)
		if err != nil {
			return Nil, err
		}
		buf, err := ffmpeg.ImportAudio(it.Context(), path)
		if err != nil {
			return Nil, err
		}
		return AudioValue(audiorenders.NewBufferRenderU16(buf, interp)), nil
	})
}

// audioInterp reads an optional interpolation name, defaulting to linear.
func audioInterp(args []Value, i int) (audiorenders.Interpolation, error) {
	if i >= len(args) {
		return audiorenders.InterpLinear, nil
	}
	return audiorenders.ParseInterpolation(args[i].display())
}

// pathArg expands ~ and resolves relative paths against the base directory.
func (it *Interp) pathArg(args []Value, i int) (string, error) {
	p, err := argString(args, i)
	if err != nil {
		return "", err
	}
	if p, err = homedir.Expand(p); err != nil {
		return "", err
	}
	if !filepath.IsAbs(p) && it.baseDir != "" {
		p = filepath.Join(it.baseDir, p)
	}
	return p, nil
}
