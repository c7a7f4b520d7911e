package token

// Details describes the details of a token.
type Details struct {
	ProcessID string // the AO process ID of the token
	Name      string // the name of the token, e.g., "Points"
	Ticker    string // the ticker of the token, e.g., "PNTS"
	Decimals  uint   // the power of ten to use when representing the "whole" unit of the token from its base value
}

// Denomination returns the number of fractional digits quantities of the token carry.
func (d *Details) Denomination() uint {
	return d.Decimals
}
