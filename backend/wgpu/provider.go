package wgpu

import "github.com/gogpu/gpucontext"

// DeviceHandle provides GPU device access from a host application.
//
// A host that already owns a device (a windowing framework, an engine)
// implements gpucontext.DeviceProvider and hands it over instead of
// letting the backend bring up its own instance and adapter. The shared
// device is borrowed: Close never destroys it.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so the handle
// stays compatible with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NewShared creates a backend on a host-provided device. Init skips
// instance and adapter bring-up; Close leaves the shared device alone.
func NewShared(h DeviceHandle) *Backend {
	return &Backend{shared: h}
}

// SharedDevice returns the host-provided device, or nil when the backend
// owns its device.
func (b *Backend) SharedDevice() gpucontext.Device {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.shared == nil {
		return nil
	}
	return b.shared.Device()
}
