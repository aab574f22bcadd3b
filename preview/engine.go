package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/script"
)

// MainFile is the script an Engine loads from its directory.
const MainFile = "main.ks"

const (
	minFramerate  = 1
	maxFramerate  = 120
	minSampleRate = 4000
	maxSampleRate = 48000

	subscriberBuffer = 8
)

// ErrScriptValue is returned when a script binds a playback setting to a
// value of the wrong kind.
var ErrScriptValue = errors.New("preview: bad script setting")

// Frame is one rendered tick. PNG is nil when the script has no video and
// Audio is nil when it has no audio.
type Frame struct {
	Index      int
	PNG        []byte
	Audio      []byte
	SampleRate int
	Channels   int
}

// Message is delivered to subscribers: either a Frame or a log line.
type Message struct {
	Frame *Frame
	Log   string
}

// settings are the playback values a script may override.
type settings struct {
	framerate  int
	samplerate int
	width      int
	height     int
	start      int
	end        int // -1 plays forever
	loop       bool
}

// scene is an immutable snapshot of a loaded script.
type scene struct {
	settings
	video kantera.Render[kantera.Rgba]
	audio kantera.AudioRender
}

// Engine plays the scene described by a directory's main.ks.
type Engine struct {
	dir      string
	logger   *slog.Logger
	cache    *script.Cache
	workers  int
	defaults settings

	mu      sync.Mutex
	scene   *scene
	gen     int
	frame   int
	playing bool

	subMu sync.Mutex
	subs  map[chan Message]struct{}
}

// NewEngine returns an engine for dir. Nothing is loaded until Load.
func NewEngine(dir string, opts ...Option) *Engine {
	e := &Engine{
		dir:    dir,
		logger: kantera.Logger(),
		cache:  script.NewCache(),
		defaults: settings{
			framerate:  30,
			samplerate: 16000,
			width:      600,
			height:     400,
			end:        -1,
		},
		subs: make(map[chan Message]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the project directory.
func (e *Engine) Dir() string { return e.dir }

// MainPath returns the path of the script file.
func (e *Engine) MainPath() string { return filepath.Join(e.dir, MainFile) }

// Load reads and evaluates the script file. On failure the previous scene
// keeps playing and the error is also sent to subscribers.
func (e *Engine) Load() error {
	src, err := os.ReadFile(e.MainPath())
	if err != nil {
		e.fail(err)
		return err
	}
	return e.LoadSource(string(src))
}

// LoadSource evaluates src as the scene script.
func (e *Engine) LoadSource(src string) error {
	rt := script.NewRuntime(
		script.WithCache(e.cache),
		script.WithBaseDir(e.dir),
		script.WithLogger(e.logger),
	)
	d := e.defaults
	rt.Insert("framerate", script.Int(int64(d.framerate)))
	rt.Insert("samplerate", script.Int(int64(d.samplerate)))
	rt.Insert("frame_size", script.Vector(script.Int(int64(d.width)), script.Int(int64(d.height))))
	rt.Insert("start_frame", script.Int(0))
	rt.Insert("end_frame", script.Bool(false))
	rt.Insert("loop", script.Bool(false))

	if err := rt.Run(src); err != nil {
		e.fail(err)
		return err
	}
	sc, err := readScene(rt, d)
	if err != nil {
		e.fail(err)
		return err
	}

	e.mu.Lock()
	e.scene = sc
	e.gen++
	e.frame = sc.start
	e.playing = true
	e.mu.Unlock()

	e.logger.Info("preview: loaded", "path", e.MainPath(),
		"video", sc.video != nil, "audio", sc.audio != nil,
		"size", fmt.Sprintf("%dx%d", sc.width, sc.height),
		"framerate", sc.framerate, "samplerate", sc.samplerate,
		"start", sc.start, "end", sc.end, "loop", sc.loop)
	st := e.cache.Stats()
	e.logger.Debug("preview: script cache", "entries", st.Len, "limit", st.Limit, "hits", st.Hits, "misses", st.Misses)
	e.broadcast(Message{Log: "loaded."})
	return nil
}

func (e *Engine) fail(err error) {
	e.logger.Error("preview: load failed", "path", e.MainPath(), "err", err)
	e.broadcast(Message{Log: err.Error()})
}

func readScene(rt *script.Runtime, d settings) (*scene, error) {
	sc := &scene{settings: d}
	if v, ok := rt.Get("video"); ok && v.Kind != script.KindNil {
		r, ok := v.AsRender()
		if !ok {
			return nil, fmt.Errorf("%w: video is %s, not a render", ErrScriptValue, v.Kind)
		}
		sc.video = r
	}
	if v, ok := rt.Get("audio"); ok && v.Kind != script.KindNil {
		a, ok := v.AsAudio()
		if !ok {
			return nil, fmt.Errorf("%w: audio is %s, not an audio render", ErrScriptValue, v.Kind)
		}
		sc.audio = a
	}

	var err error
	if sc.framerate, err = intSetting(rt, "framerate", d.framerate); err != nil {
		return nil, err
	}
	sc.framerate = clamp(sc.framerate, minFramerate, maxFramerate)
	if sc.samplerate, err = intSetting(rt, "samplerate", d.samplerate); err != nil {
		return nil, err
	}
	sc.samplerate = clamp(sc.samplerate, minSampleRate, maxSampleRate)
	if v, ok := rt.Get("frame_size"); ok {
		size, ok := v.AsVec()
		if !ok {
			return nil, fmt.Errorf("%w: frame_size is %s, want [w h]", ErrScriptValue, v.Kind)
		}
		sc.width, sc.height = max(int(size.X), 0), max(int(size.Y), 0)
	}
	if sc.start, err = intSetting(rt, "start_frame", 0); err != nil {
		return nil, err
	}

	sc.end = -1
	if v, ok := rt.Get("end_frame"); ok {
		if n, ok := v.AsInt(); ok {
			sc.end = max(int(n), 1)
		} else if v.Truthy() {
			return nil, fmt.Errorf("%w: end_frame is %s, want an integer or false", ErrScriptValue, v.Kind)
		}
	}
	if sc.end < 0 && sc.video != nil {
		if dur := sc.video.Duration(); !math.IsInf(dur, 0) && !math.IsNaN(dur) {
			sc.end = max(int(math.Ceil(dur*float64(sc.framerate))), 1)
		}
	}

	if v, ok := rt.Get("loop"); ok {
		sc.loop = v.Truthy()
	}
	return sc, nil
}

func intSetting(rt *script.Runtime, name string, def int) (int, error) {
	v, ok := rt.Get(name)
	if !ok {
		return def, nil
	}
	n, ok := v.AsInt()
	if !ok {
		return 0, fmt.Errorf("%w: %s is %s, want an integer", ErrScriptValue, name, v.Kind)
	}
	return int(n), nil
}

func clamp(v, lo, hi int) int { return kantera.Clamp(v, lo, hi) }

// Scene is the playback description of a loaded script. End is -1 when
// the scene plays forever.
type Scene struct {
	Video      kantera.Render[kantera.Rgba]
	Audio      kantera.AudioRender
	Framerate  int
	SampleRate int
	Width      int
	Height     int
	Start      int
	End        int
	Loop       bool
}

// Scene returns the loaded scene, or false before the first successful
// load.
func (e *Engine) Scene() (Scene, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sc := e.scene
	if sc == nil {
		return Scene{}, false
	}
	return Scene{
		Video:      sc.video,
		Audio:      sc.audio,
		Framerate:  sc.framerate,
		SampleRate: sc.samplerate,
		Width:      sc.width,
		Height:     sc.height,
		Start:      sc.start,
		End:        sc.end,
		Loop:       sc.loop,
	}, true
}

// Playing reports the frame that the next Step renders, or false when
// nothing is loaded or playback reached end_frame without loop.
func (e *Engine) Playing() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame, e.playing
}

// Framerate returns the frame rate of the loaded scene.
func (e *Engine) Framerate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scene == nil {
		return e.defaults.framerate
	}
	return e.scene.framerate
}

// Seek moves playback to frame f and resumes it.
func (e *Engine) Seek(f int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scene == nil {
		return
	}
	e.frame = max(f, 0)
	e.playing = true
}

// Step renders the current frame, sends it to subscribers and advances
// playback. It returns nil without error when nothing is playing. A render
// contract violation stops playback.
func (e *Engine) Step() (*Frame, error) {
	e.mu.Lock()
	sc, gen, frame, playing := e.scene, e.gen, e.frame, e.playing
	e.mu.Unlock()
	if sc == nil || !playing {
		return nil, nil
	}

	f, err := sc.render(frame, e.workers)
	if err != nil {
		e.mu.Lock()
		if e.gen == gen {
			e.playing = false
		}
		e.mu.Unlock()
		e.logger.Error("preview: render failed", "frame", frame, "err", err)
		e.broadcast(Message{Log: err.Error()})
		return nil, err
	}
	e.broadcast(Message{Frame: f})

	e.mu.Lock()
	if e.gen == gen && e.frame == frame {
		e.frame, e.playing = sc.next(frame)
	}
	e.mu.Unlock()
	return f, nil
}

// next returns the frame after f and whether playback continues.
func (sc *scene) next(f int) (int, bool) {
	f++
	if sc.end >= 0 && f >= sc.end {
		if sc.loop {
			return sc.start, true
		}
		return f, false
	}
	return f, true
}

func (sc *scene) render(frame, workers int) (f *Frame, err error) {
	defer kantera.Recover(&err)
	f = &Frame{Index: frame, SampleRate: sc.samplerate}
	if sc.video != nil && sc.width > 0 && sc.height > 0 {
		ro := kantera.Canvas(sc.width, sc.height, kantera.Range{Start: frame, End: frame + 1}, sc.framerate)
		pix := kantera.RenderToBufferParallel(ro, sc.video, kantera.WithWorkers(workers))
		if f.PNG, err = EncodePNG(sc.width, sc.height, pix); err != nil {
			return nil, err
		}
	}
	if sc.audio != nil {
		ro := kantera.AudioRenderOpt{
			SampleRange: AudioFrameRange(frame, sc.samplerate, sc.framerate),
			SampleRate:  sc.samplerate,
		}
		f.Channels = sc.audio.ChannelNum()
		f.Audio = kantera.AppendU16LE(nil, sc.audio.Render(ro), f.Channels)
	}
	return f, nil
}

// AudioFrameRange returns the samples that play during frame:
// frame·sr/fps up to (frame+1)·sr/fps.
func AudioFrameRange(frame, sampleRate, framerate int) kantera.Range64 {
	sr, fps := int64(sampleRate), int64(framerate)
	return kantera.Range64{
		Start: int64(frame) * sr / fps,
		End:   int64(frame+1) * sr / fps,
	}
}

// EncodePNG encodes a width×height frame quantised with kantera.ToU8.
func EncodePNG(width, height int, pix []kantera.Rgba) ([]byte, error) {
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", kantera.ErrDataSize, len(pix), width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, c := range pix {
		r, g, b, a := c.U8()
		copy(img.Pix[i*4:i*4+4], []uint8{r, g, b, a})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Subscribe registers a receiver of frames and log lines. A receiver that
// falls behind misses messages rather than stalling playback. Call the
// returned function to unsubscribe.
func (e *Engine) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, subscriberBuffer)
	e.subMu.Lock()
	e.subs[ch] = struct{}{}
	e.subMu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.subMu.Lock()
			delete(e.subs, ch)
			e.subMu.Unlock()
			close(ch)
		})
	}
}

func (e *Engine) broadcast(m Message) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for ch := range e.subs {
		select {
		case ch <- m:
		default:
		}
	}
}
