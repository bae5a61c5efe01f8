package ui

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const (
	sampleRate = 44100
	volume     = 0.05
)

// audio pulls samples from the console's channel into a portaudio stream.
// The emulation side never blocks: when the channel runs dry the callback
// pads with silence, when it is full the console drops samples.
type audio struct {
	stream  *portaudio.Stream
	samples chan float32
}

func newAudio() *audio {
	return &audio{samples: make(chan float32, sampleRate)}
}

// fill is the portaudio callback.
func (a *audio) fill(out []float32) {
	for i := range out {
		select {
		case x := <-a.samples:
			out[i] = x * volume
		default:
			out[i] = 0
		}
	}
}

func (a *audio) start() error {
	portaudio.Initialize()
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, 0, a.fill)
	if err != nil {
		return fmt.Errorf("failed to open the audio stream: %w", err)
	}
	a.stream = stream
	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start the audio stream: %w", err)
	}
	return nil
}

func (a *audio) terminate() {
	portaudio.Terminate()
	a.stream.Close()
}
