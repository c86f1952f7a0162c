// Package units centralizes the unit handling the host scene normally owns:
// the display suffix for each unit system/length unit pair and the conversion
// factor between display units and generator units.
package units

import "fmt"

// System mirrors the host's unit system setting.
type System uint8

const (
	SystemNone System = iota
	SystemMetric
	SystemImperial
)

// LengthUnit is the display length unit within a system.
type LengthUnit uint8

const (
	UnitAdaptive LengthUnit = iota
	UnitKilometers
	UnitMeters
	UnitCentimeters
	UnitMillimeters
	UnitMicrometers
	UnitMiles
	UnitFeet
	UnitInches
	UnitThou
)

type suffixKey struct {
	system System
	unit   LengthUnit
}

var suffixes = map[suffixKey]string{
	{SystemMetric, UnitKilometers}:   "km",
	{SystemMetric, UnitMeters}:       "m",
	{SystemMetric, UnitCentimeters}:  "cm",
	{SystemMetric, UnitMillimeters}:  "mm",
	{SystemMetric, UnitMicrometers}:  "µm",
	{SystemImperial, UnitMiles}:      "mi",
	{SystemImperial, UnitFeet}:       "'",
	{SystemImperial, UnitInches}:     "\"",
	{SystemImperial, UnitThou}:       "thou",
}

// Settings is the relevant slice of the host scene's unit configuration.
type Settings struct {
	System      System
	LengthUnit  LengthUnit
	ScaleLength float32
}

// Suffix returns the display suffix for the settings, or "" when the system
// is unitless or the unit does not belong to the system.
func (s Settings) Suffix() string {
	return suffixes[suffixKey{s.System, s.LengthUnit}]
}

// ToGenerator returns the factor converting display units into generator
// units. Unitless scenes use 1.0; everything else uses 0.001/scale, matching
// the historical call sites.
func (s Settings) ToGenerator() float32 {
	if s.System == SystemNone {
		return 1.0
	}
	return 0.001 / s.ScaleLength
}

// FormatLength renders a length with three decimals and the display suffix,
// the way progress reports print voxel sizes.
func (s Settings) FormatLength(v float32) string {
	return fmt.Sprintf("%.3f%s", v, s.Suffix())
}

// ParseSystem maps a CLI flag value onto a System.
func ParseSystem(name string) (System, error) {
	switch name {
	case "", "none":
		return SystemNone, nil
	case "metric":
		return SystemMetric, nil
	case "imperial":
		return SystemImperial, nil
	}
	return SystemNone, fmt.Errorf("unknown unit system %q", name)
}

// ParseLengthUnit maps a CLI flag value onto a LengthUnit.
func ParseLengthUnit(name string) (LengthUnit, error) {
	switch name {
	case "", "adaptive":
		return UnitAdaptive, nil
	case "km", "kilometers":
		return UnitKilometers, nil
	case "m", "meters":
		return UnitMeters, nil
	case "cm", "centimeters":
		return UnitCentimeters, nil
	case "mm", "millimeters":
		return UnitMillimeters, nil
	case "um", "micrometers":
		return UnitMicrometers, nil
	case "mi", "miles":
		return UnitMiles, nil
	case "ft", "feet":
		return UnitFeet, nil
	case "in", "inches":
		return UnitInches, nil
	case "thou":
		return UnitThou, nil
	}
	return UnitAdaptive, fmt.Errorf("unknown length unit %q", name)
}
