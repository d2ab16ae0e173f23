package spectrum

// Physical constants (CODATA 2010).
const (
	Avogadro         = 6.02214129e23     // mol^-1
	Planck           = 6.62606957e-34    // J s
	Rydberg          = 1.0973731568539e7 // m^-1
	SpeedOfLight     = 299792458         // m s^-1
	ElementaryCharge = 1.602176565e-19   // C

	angstrom = 1e-10 // m
)

// PhotonEnergy returns the energy in joules of a photon of the given
// wavelength in angstroms. Non-positive wavelengths yield 0.
func PhotonEnergy(wavelength float64) float64 {
	if !(wavelength > 0) {
		return 0
	}
	return Planck * SpeedOfLight / (wavelength * angstrom)
}

// MolarEnergy returns the energy of one mole of photons in kJ/mol.
func MolarEnergy(wavelength float64) float64 {
	return PhotonEnergy(wavelength) * Avogadro / 1000
}

// ElectronVolts returns the photon energy in eV.
func ElectronVolts(wavelength float64) float64 {
	return PhotonEnergy(wavelength) / ElementaryCharge
}

// RydbergWavelength returns the vacuum wavelength in angstroms of the
// transition upper -> lower in a hydrogen-like ion of nuclear charge z,
// ignoring the reduced-mass correction.
func RydbergWavelength(z, lower, upper int) (float64, error) {
	if err := validateTransition(z, lower, upper); err != nil {
		return 0, err
	}
	nl := float64(lower * lower)
	nu := float64(upper * upper)
	inverse := Rydberg * float64(z*z) * (1/nl - 1/nu)
	return 1 / inverse / angstrom, nil
}
