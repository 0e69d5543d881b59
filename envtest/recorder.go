package envtest

import "github.com/opd-ai/libretro"

// AVRecorder captures a core's frame output and feeds it scripted
// input, standing in for the frontend's AV callbacks during tests.
type AVRecorder struct {
	// Frames holds a copy of every presented frame; nil entries are
	// duped frames.
	Frames [][]byte
	Widths []uint32
	Polls  int

	// Samples accumulates all interleaved stereo audio.
	Samples []int16

	// Input answers input-state queries; nil means "nothing pressed".
	Input func(port uint32, device libretro.Device, index, id uint32) int16
}

// Callbacks returns a callback bundle wired to the recorder.
func (r *AVRecorder) Callbacks() *libretro.Callbacks {
	return &libretro.Callbacks{
		VideoRefresh: func(frame []byte, width, height, pitch uint32) {
			if frame == nil {
				r.Frames = append(r.Frames, nil)
			} else {
				r.Frames = append(r.Frames, append([]byte(nil), frame...))
			}
			r.Widths = append(r.Widths, width)
		},
		AudioSample: func(left, right int16) {
			r.Samples = append(r.Samples, left, right)
		},
		AudioSampleBatch: func(samples []int16) int {
			r.Samples = append(r.Samples, samples...)
			return len(samples) / 2
		},
		InputPoll: func() { r.Polls++ },
		InputState: func(port uint32, device libretro.Device, index, id uint32) int16 {
			if r.Input == nil {
				return 0
			}
			return r.Input(port, device, index, id)
		},
	}
}
