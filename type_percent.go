package depot

import "fmt"

// Percent is a percentage expressed in percent points.
//
// The canonical representation everywhere in this package is percent points
// in [0, 100]. Legacy data files that stored fractions in [0, 1] are
// converted once, at the decode boundary (see DecodeLedger), never at call
// sites.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Check returns an error if p is outside the canonical [0, 100] range.
func (p Percent) Check() error {
	if p < 0 || p > 100 {
		return fmt.Errorf("percentage %v out of range [0, 100]", float64(p))
	}
	return nil
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
