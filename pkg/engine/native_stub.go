//go:build !(darwin || linux || freebsd)

package engine

import "errors"

// NativeCore is only available where purego can dlopen the core library.
type NativeCore struct{}

// NewNativeCore reports that this platform has no native core loader.
func NewNativeCore() (*NativeCore, error) {
	return nil, errors.New("engine: native core loading is not supported on this platform")
}
