package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var bannerColor = color.New(color.FgHiMagenta, color.Bold)

// PrintBanner writes the ASCII art banner to w, in magenta when colors are
// enabled.
func PrintBanner(w io.Writer) {
	_, _ = bannerColor.Fprint(w, ` _             _ _
| |___   ____ _ _   _  __| (_) ___
| __\ \ / / _`+"`"+` | | | |/ _`+"`"+` | |/ _ \
| |_ \ V / (_| | |_| | (_| | | (_) |
 \__| \_/ \__,_|\__,_|\__,_|_|\___/
`)
	fmt.Fprintln(w)
}
