package util

import (
	"fmt"
	"math"
)

// FormatValueFactor renders a value with an engineering prefix, e.g.
// FormatValueFactor(0.00345, "A") = "3.450 mA".
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case value == 0:
		return fmt.Sprintf("0.000 %s", unit)
	case absValue >= 1e6:
		return fmt.Sprintf("%.3f M%s", value*1e-6, unit)
	case absValue >= 1e3:
		return fmt.Sprintf("%.3f k%s", value*1e-3, unit)
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}
