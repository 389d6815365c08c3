package core

// Port group names, one per clock-gated pin group
const (
	GroupSelect   = "select"   // digit-select outputs (PA7-6)
	GroupSegments = "segments" // segment bus (PB7-0)
	GroupIO       = "io"       // button input and heartbeat LED (PF4, PF2)
)

// PinMap is the fixed pin assignment of a board
type PinMap struct {
	Button     GPIOPin    // Active-low push button, pulled up
	Heartbeat  GPIOPin    // Toggled once per loop pass
	OnesSelect GPIOPin    // High enables the ones digit
	TensSelect GPIOPin    // High enables the tens digit
	Segments   [8]GPIOPin // a, b, c, d, e, f, g, dp; NoPin when driven off-chip
}

// PortGroup is one block of pins configured together
type PortGroup struct {
	Name    string
	Outputs []GPIOPin
	Inputs  []GPIOPin // Inputs with pull-up
}

// Validate rejects maps that assign one pin to two roles or leave the
// button, heartbeat or a select line without a pin. Only segment lines
// may be NoPin.
func (m PinMap) Validate() error {
	required := []GPIOPin{m.Button, m.Heartbeat, m.OnesSelect, m.TensSelect}
	for _, p := range required {
		if p == NoPin {
			return ErrPinUnassigned
		}
	}

	seen := make(map[GPIOPin]bool, 12)
	pins := append(required, m.Segments[:]...)
	for _, p := range pins {
		if p == NoPin {
			continue
		}
		if seen[p] {
			return ErrPinConflict
		}
		seen[p] = true
	}
	return nil
}

// PortGroups splits the map into the groups that are initialized at startup
func (m PinMap) PortGroups() []PortGroup {
	segments := make([]GPIOPin, 0, len(m.Segments))
	for _, p := range m.Segments {
		if p != NoPin {
			segments = append(segments, p)
		}
	}

	groups := []PortGroup{
		{Name: GroupSelect, Outputs: []GPIOPin{m.OnesSelect, m.TensSelect}},
		{Name: GroupSegments, Outputs: segments},
		{Name: GroupIO, Outputs: []GPIOPin{m.Heartbeat}, Inputs: []GPIOPin{m.Button}},
	}
	return groups
}

// Init enables the group's clock when the driver needs it, then configures
// each pin. Calling it again reconfigures the same pins.
func (g PortGroup) Init(gpio GPIODriver) error {
	if ce, ok := gpio.(PortClockEnabler); ok {
		if err := ce.EnablePortClock(g.Name); err != nil {
			return err
		}
	}

	for _, p := range g.Outputs {
		if err := gpio.ConfigureOutput(p); err != nil {
			return err
		}
	}
	for _, p := range g.Inputs {
		if err := gpio.ConfigureInputPullUp(p); err != nil {
			return err
		}
	}
	return nil
}

// InitPorts initializes every group in order
func InitPorts(gpio GPIODriver, groups []PortGroup) error {
	for _, g := range groups {
		if err := g.Init(gpio); err != nil {
			return err
		}
	}
	return nil
}
