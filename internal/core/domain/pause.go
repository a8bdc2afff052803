package domain

// PauseSwitch is the process-wide emergency halt flag gating reward and
// redemption operations. It starts unpaused. Both transitions are idempotent:
// pausing while paused (or unpausing while unpaused) is not an error.
type PauseSwitch struct {
	paused bool
}

// NewPauseSwitch creates an unpaused switch.
func NewPauseSwitch() *PauseSwitch {
	return &PauseSwitch{}
}

// Pause sets the flag.
func (p *PauseSwitch) Pause() {
	p.paused = true
}

// Unpause clears the flag.
func (p *PauseSwitch) Unpause() {
	p.paused = false
}

// IsPaused reports the flag. Pure query.
func (p *PauseSwitch) IsPaused() bool {
	return p.paused
}
