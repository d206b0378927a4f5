package converter

import (
	"fmt"
	"strings"

	"github.com/i474232898/temperature-converter/internal/temperature"
)

const (
	HelpText = `-= temperature-converter =-
    -t  --temp  :  Enter a temperature and scale (ex: 12C) to convert
    -z  --zip   :  Enter a zip code to get the current temperature
    -r  --read  :  Print out app use history
 All entries are recorded.`

	InvalidPrompt = "Enter -h or --help to see a list of commands"
)

// FormatConversion renders c under the conversion header, one scale per line.
func FormatConversion(c temperature.Conversion) string {
	return "-= Convert input temperature =-" + formatReadings(c)
}

// FormatZipReport renders a lookup result under a header naming the place.
func FormatZipReport(r ZipReport) string {
	header := fmt.Sprintf("-= Retrieve temperature in %s, %s =-", r.Observation.Name, r.Observation.Region)
	return header + formatReadings(r.Conversion)
}

// FormatHistory renders the raw history text under its header.
func FormatHistory(text string) string {
	return "-= Print use history =-\n" + text
}

func formatReadings(c temperature.Conversion) string {
	var b strings.Builder
	for _, r := range c.Readings() {
		b.WriteString("\n    ")
		b.WriteString(r.String())
	}
	return b.String()
}
