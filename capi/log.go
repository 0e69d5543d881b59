package capi

/*
#include <stdlib.h>
#include "libretro.h"

void bridge_log(retro_log_printf_t f, enum retro_log_level level,
		const char *msg);
*/
import "C"

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/libretro"
)

// frontendLogFn is the frontend's printf-style logger, nil when the
// frontend has none or after deinit. The hook reads it per message so
// a retired session stops forwarding without unhooking.
var frontendLogFn C.retro_log_printf_t

var logHooked bool

// attachFrontendLog routes this package's logrus output to the
// frontend's log interface when one is offered. Without one the
// default stderr output stands.
func attachFrontendLog(env *libretro.Environment) {
	p, ok := env.LogInterface()
	if !ok {
		return
	}
	frontendLogFn = C.retro_log_printf_t(p)
	if !logHooked {
		logrus.AddHook(&frontendLogHook{})
		logHooked = true
	}
}

func detachFrontendLog() {
	frontendLogFn = nil
}

// frontendLogHook mirrors every logrus entry to the frontend so core
// diagnostics land in the frontend's own log window.
type frontendLogHook struct{}

func (h *frontendLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *frontendLogHook) Fire(e *logrus.Entry) error {
	fn := frontendLogFn
	if fn == nil {
		return nil
	}
	msg := C.CString(formatEntry(e))
	defer C.free(unsafe.Pointer(msg))
	C.bridge_log(fn, logLevel(e.Level), msg)
	return nil
}

func logLevel(l logrus.Level) C.enum_retro_log_level {
	switch l {
	case logrus.DebugLevel, logrus.TraceLevel:
		return C.RETRO_LOG_DEBUG
	case logrus.WarnLevel:
		return C.RETRO_LOG_WARN
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return C.RETRO_LOG_ERROR
	}
	return C.RETRO_LOG_INFO
}

// formatEntry flattens an entry to one line; the frontend's logger is
// plain printf, not structured.
func formatEntry(e *logrus.Entry) string {
	s := e.Message
	if len(e.Data) == 0 {
		return s
	}
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s += fmt.Sprintf(" %s=%v", k, e.Data[k])
	}
	return s
}
