package capi

/*
#include "libretro.h"

// cgo cannot call C function pointers directly, so each frontend-supplied
// callback gets a plain C trampoline here. Definitions live in this file
// only; the other files in the package declare them.

bool bridge_environment(retro_environment_t f, unsigned cmd, void *data)
{
	return f(cmd, data);
}

void bridge_video_refresh(retro_video_refresh_t f, const void *data,
		unsigned width, unsigned height, size_t pitch)
{
	f(data, width, height, pitch);
}

void bridge_audio_sample(retro_audio_sample_t f, int16_t left, int16_t right)
{
	f(left, right);
}

size_t bridge_audio_sample_batch(retro_audio_sample_batch_t f,
		const int16_t *data, size_t frames)
{
	return f(data, frames);
}

void bridge_input_poll(retro_input_poll_t f)
{
	f();
}

int16_t bridge_input_state(retro_input_state_t f, unsigned port,
		unsigned device, unsigned index, unsigned id)
{
	return f(port, device, index, id);
}

void bridge_log(retro_log_printf_t f, enum retro_log_level level,
		const char *msg)
{
	f(level, "%s\n", msg);
}
*/
import "C"
