//go:build (rp2040 || rp2350) && !shiftreg

package main

import "digitalio/core"

// segmentBus drives the eight segment lines straight from GP2-GP9;
// a nil bus makes the controller use a core.PinBus over the pin map.
func segmentBus() (core.SegmentBus, core.PinMap) {
	return nil, boardPins()
}
