package ieee754

// Mode selects how exponent fields 0 and 255 are treated.
type Mode string

const (
	// ModeStandard follows IEEE-754: subnormals, infinities and NaN.
	ModeStandard Mode = "standard"
	// ModeUniform applies the normal-number formula to every exponent.
	ModeUniform Mode = "uniform"
)

func (m Mode) Validate() error {
	switch m {
	case ModeStandard, ModeUniform:
		return nil
	}
	return ErrUnknownMode.Here().Appendf("%q: expected %q or %q", m, ModeStandard, ModeUniform)
}
