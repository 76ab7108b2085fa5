// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (e.g., a gogpu.App) implements DeviceHandle and passes it to
// the renderer, which uses the shared device. The renderer RECEIVES the
// device from the host; it does NOT create one. This keeps GPU resources
// shared between the renderer and the host and avoids any device creation
// overhead here.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// package-local name for the interface while staying fully compatible
// with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// Device access errors.
var (
	// ErrNoDevice is returned when the host provider does not expose HAL
	// device handles.
	ErrNoDevice = errors.New("render: provider does not expose HAL device")
)

// HALFromProvider extracts the hal device and queue from a host provider.
// The provider must implement HalDevice() any and HalQueue() any returning
// wgpu/hal types; gogpu contexts do.
func HALFromProvider(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoDevice)
	}
	return device, queue, nil
}

// NullDeviceHandle is a DeviceHandle with nil implementations. Used for
// GPU-less operation, where the renderer tracks frame state without
// issuing GPU work.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo returns an empty adapter description for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
