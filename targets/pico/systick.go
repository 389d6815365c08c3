//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"unsafe"

	"digitalio/core"
)

// Cortex-M SysTick, identical on the M0+ (RP2040) and M33 (RP2350).
// TinyGo keeps its own time on the RP TIMER peripheral, so SysTick is free.
//
// CSR  @ 0x00 - control and status
// RVR  @ 0x04 - reload value (24 bits)
// CVR  @ 0x08 - current value, any write clears it and COUNTFLAG
const (
	sysTickBase = 0xE000E010
	sysTickCSR  = sysTickBase + 0x00
	sysTickRVR  = sysTickBase + 0x04
	sysTickCVR  = sysTickBase + 0x08

	csrEnable    = 1 << 0
	csrClkSource = 1 << 2  // Processor clock instead of the external reference
	csrCountFlag = 1 << 16 // Set on 1 -> 0, cleared by reading CSR
)

var (
	systCSR = (*volatile.Register32)(unsafe.Pointer(uintptr(sysTickCSR)))
	systRVR = (*volatile.Register32)(unsafe.Pointer(uintptr(sysTickRVR)))
	systCVR = (*volatile.Register32)(unsafe.Pointer(uintptr(sysTickCVR)))
)

// SysTick implements core.CountdownDriver on the SysTick registers
type SysTick struct{}

// Configure disables SysTick, loads reload and restarts it on the core clock
func (SysTick) Configure(reload uint32) {
	systCSR.Set(0)
	systRVR.Set(reload & core.MaxReload)
	systCVR.Set(0)
	systCSR.Set(csrEnable | csrClkSource)
}

// Start programs the reload value and clears the current count
func (SysTick) Start(reload uint32) {
	systRVR.Set(reload & core.MaxReload)
	systCVR.Set(0)
}

// Expired reads COUNTFLAG; the read clears it
func (SysTick) Expired() bool {
	return systCSR.HasBits(csrCountFlag)
}
