package resonator

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	mm         = 1000.0
	mmPerInch  = 25.4
	ruleLength = 80
)

var rule = strings.Repeat("=", ruleLength)

// Report writes the human readable tables for s to w.
func Report(w io.Writer, s *Survey) error {
	sum, err := s.Summary()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
	}

	p("%s\n", rule)
	p("BASE NOTE RANGE CALCULATION FOR %.0fMM TOTAL LENGTH FLUTE\n", s.Instrument.TotalLength*mm)
	p("%s\n", rule)
	p("\nTotal Length: %.0f mm\n", s.Instrument.TotalLength*mm)
	p("Speed of Sound: %.1f m/s (at 20°C)\n", s.Model.SpeedOfSound)
	p("\n%s\n", rule)

	lastDiameter := -1.0
	for _, r := range s.Results {
		if r.Diameter != lastDiameter {
			lastDiameter = r.Diameter
			p("\n%s\n", rule)
			p("INNER DIAMETER: %.0f mm (%.2f inches)\n", r.Diameter*mm, r.Diameter*mm/mmPerInch)
			p("%s\n\n", rule)
		}
		p("Bore Length: %.0f mm\n", r.BoreLength*mm)
		p("  Slow Air Chamber: ~%.0f mm\n", r.SlowAirChamber*mm)
		p("  K1: %.3f, K2: %.3f\n", r.K1, r.K2)
		p("  End Correction: %.2f mm\n", r.EndCorrection*mm)
		p("  Effective Length: %.2f mm\n", r.EffectiveLength*mm)
		p("  Fundamental Frequency: %.2f Hz\n", r.Fundamental)
		p("  Closest Note: %s\n\n", r.Match)
	}

	p("%s\n", rule)
	p("SUMMARY: BASE NOTE RANGE\n")
	p("%s\n", rule)
	p("\nMinimum Base Note: %.2f Hz → %s\n", sum.Min.Frequency, sum.Min)
	p("Maximum Base Note: %.2f Hz → %s\n", sum.Max.Frequency, sum.Max)
	p("\nNote Range: Approximately %s to %s\n", sum.Min.Note.Name, sum.Max.Note.Name)

	p("\n%s\n", rule)
	p("RECOMMENDED CONFIGURATIONS\n")
	p("%s\n", rule)
	p("\nLowest Note (%s):\n", geometryLabel(sum.Lowest))
	p("  %s at %.2f Hz\n", sum.Lowest.Match.Note.Name, sum.Lowest.Fundamental)
	p("\nHighest Note (%s):\n", geometryLabel(sum.Highest))
	p("  %s at %.2f Hz\n", sum.Highest.Match.Note.Name, sum.Highest.Fundamental)
	p("\n%s\n", rule)

	return bw.Flush()
}

func geometryLabel(r Result) string {
	return fmt.Sprintf("%.0fmm diameter, %.0fmm bore", r.Diameter*mm, r.BoreLength*mm)
}
