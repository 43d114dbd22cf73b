// Package platform owns the window and turns its events into core input
// and events.
package platform

/**
 * @brief What the engine needs from the host: a window (or a stand-in for
 * one), a message pump and a clock.
 */
type Platform interface {
	Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error
	Shutdown() error
	// PumpMessages processes pending window events. It returns false once the
	// window has been asked to close.
	PumpMessages() bool
	// GetAbsoluteTime returns seconds since Startup.
	GetAbsoluteTime() float64
	Sleep(ms float64)
}
