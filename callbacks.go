package libretro

import "github.com/opd-ai/libretro/ffi"

// Callbacks bundles the frame-loop callbacks the frontend registered
// before retro_init. Cores receive them once per Run call and must not
// retain them past its return. All methods are nil-safe: before the
// frontend registers a callback they are no-ops returning zero values.
type Callbacks struct {
	// VideoRefresh presents one video frame. A nil frame signals a
	// duped (unchanged) frame when the frontend supports it.
	VideoRefresh func(frame []byte, width, height, pitch uint32)

	// AudioSample pushes a single stereo sample.
	AudioSample func(left, right int16)

	// AudioSampleBatch pushes interleaved stereo samples and reports
	// how many frames the frontend consumed.
	AudioSampleBatch func(samples []int16) int

	// InputPoll latches input state for the frame.
	InputPoll func()

	// InputState queries one input element.
	InputState func(port uint32, device Device, index, id uint32) int16
}

// Video presents a frame. pitch is in bytes.
func (c *Callbacks) Video(frame []byte, width, height, pitch uint32) {
	if c.VideoRefresh != nil {
		c.VideoRefresh(frame, width, height, pitch)
	}
}

// DupeFrame tells the frontend to re-present the previous frame.
func (c *Callbacks) DupeFrame(width, height, pitch uint32) {
	if c.VideoRefresh != nil {
		c.VideoRefresh(nil, width, height, pitch)
	}
}

// Audio pushes interleaved stereo samples, preferring the batch
// callback and falling back to per-sample delivery.
func (c *Callbacks) Audio(samples []int16) int {
	if len(samples) < 2 {
		return 0
	}
	if c.AudioSampleBatch != nil {
		return c.AudioSampleBatch(samples)
	}
	if c.AudioSample == nil {
		return 0
	}
	frames := len(samples) / 2
	for i := 0; i < frames; i++ {
		c.AudioSample(samples[2*i], samples[2*i+1])
	}
	return frames
}

// PollInput latches input for this frame. Call once per Run before any
// Input queries.
func (c *Callbacks) PollInput() {
	if c.InputPoll != nil {
		c.InputPoll()
	}
}

// Input queries one input element, e.g. a single joypad button.
func (c *Callbacks) Input(port uint32, device Device, index, id uint32) int16 {
	if c.InputState == nil {
		return 0
	}
	return c.InputState(port, device, index, id)
}

// Joypad reads all sixteen RetroPad buttons on a port and packs them
// into a bitmask indexed by JoypadButton.
func (c *Callbacks) Joypad(port uint32) uint32 {
	var mask uint32
	for id := uint32(ffi.DeviceIDJoypadB); id <= ffi.DeviceIDJoypadR3; id++ {
		if c.Input(port, DeviceJoypad, 0, id) != 0 {
			mask |= 1 << id
		}
	}
	return mask
}

// Pressed reports whether a button bit is set in a Joypad bitmask.
func Pressed(mask uint32, b JoypadButton) bool {
	return mask&(1<<uint32(b)) != 0
}
