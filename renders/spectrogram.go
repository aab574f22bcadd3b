package renders

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/gogpu/kantera"
)

// minFrequency is the lowest frequency on the spectrogram's log axis.
const minFrequency = 20.0

// Spectrogram draws the short-time spectrum of an audio buffer around each
// frame's time as bars over a log-frequency axis: low frequencies on the
// left, louder bins taller.
type Spectrogram struct {
	audio   *kantera.AudioBuffer[float64]
	size    int
	window  []float64
	plans   sync.Pool
	palette func(level float64) kantera.Rgba
}

// NewSpectrogram returns a spectrogram of audio using fftSize-point
// transforms.
func NewSpectrogram(audio *kantera.AudioBuffer[float64], fftSize int) (*Spectrogram, error) {
	if _, err := algofft.NewPlan64(fftSize); err != nil {
		return nil, fmt.Errorf("renders: spectrogram plan: %w", err)
	}
	s := &Spectrogram{audio: audio, size: fftSize, window: hann(fftSize)}
	s.plans.New = func() any {
		p, _ := algofft.NewPlan64(fftSize)
		return p
	}
	s.palette = func(d float64) kantera.Rgba {
		return kantera.HSL(0.8-d*1.2, 0.5, 0.3+d*0.4)
	}
	return s, nil
}

func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// levels returns normalized magnitudes, one per bin up to Nyquist, of the
// window starting at time t. Channels are mixed to mono; samples past the
// end are silent.
func (s *Spectrogram) levels(t float64) []float64 {
	a := s.audio
	start := int(math.Floor(t * float64(a.SampleRate)))
	in := make([]complex128, s.size)
	for i := range in {
		j := start + i
		if j < 0 || j >= a.SampleNum {
			continue
		}
		var sum float64
		for _, ch := range a.Channels {
			sum += ch[j]
		}
		in[i] = complex(sum/float64(a.ChannelNum)*s.window[i], 0)
	}
	out := make([]complex128, s.size)
	plan := s.plans.Get().(*algofft.Plan[complex128])
	err := plan.Forward(out, in)
	s.plans.Put(plan)
	if err != nil {
		panic(&kantera.ContractError{Node: "Spectrogram", Msg: err.Error()})
	}

	lv := make([]float64, s.size/2+1)
	for i := range lv {
		m := cmplx.Abs(out[i])
		if m > 0 {
			lv[i] = kantera.Clamp(math.Log10(m)*0.2+0.2, 0, 1)
		}
	}
	return lv
}

// bin maps a horizontal position in [0,1) to an FFT bin.
func (s *Spectrogram) bin(u float64) int {
	sr := float64(s.audio.SampleRate)
	nyq := sr / 2
	if nyq <= minFrequency {
		return int(u * float64(s.size/2))
	}
	f := minFrequency * math.Pow(nyq/minFrequency, u)
	return kantera.Clamp(int(math.Round(f/sr*float64(s.size))), 0, s.size/2)
}

// Sample panics: each frame needs a whole transform.
func (s *Spectrogram) Sample(_, _, _ float64, _ kantera.Res) kantera.Rgba {
	kantera.NotSamplable("Spectrogram")
	return kantera.Rgba{}
}

// Render implements kantera.Render.
func (s *Spectrogram) Render(ro kantera.RenderOpt, out []kantera.Rgba) {
	kantera.CheckLen("Spectrogram", ro, out)
	rx, ry := float64(ro.ResX), float64(ro.ResY)
	i := 0
	for f := ro.FrameRange.Start; f < ro.FrameRange.End; f++ {
		lv := s.levels(ro.Time(f))
		for y := ro.YRange.Start; y < ro.YRange.End; y++ {
			height := 1 - float64(y)/ry
			for x := ro.XRange.Start; x < ro.XRange.End; x++ {
				d := lv[s.bin(float64(x)/rx)]
				if height <= d {
					out[i] = s.palette(d)
				} else {
					out[i] = kantera.Black
				}
				i++
			}
		}
	}
}

// Duration implements kantera.Render.
func (s *Spectrogram) Duration() float64 { return s.audio.Duration() }
