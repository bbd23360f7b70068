// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ik5/audsort/library"
)

func printTable(w io.Writer, entries []library.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tLOUDNESS\tDURATION\tNAME\tARTIST")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\t%s\n",
			i, e.Score(), e.Record.Duration().Round(time.Millisecond), e.Name(), e.Artist)
	}

	return tw.Flush()
}

// dumpSamples prints every entry's PCM, one sample per value, sixteen to a
// line.
func dumpSamples(w io.Writer, entries []library.Entry) error {
	const perLine = 16

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "# %s (%d samples)\n", e.Record.Path, e.Record.Len())
		for i, s := range e.Record.Samples {
			b.WriteString(strconv.Itoa(int(s)))
			if (i+1)%perLine == 0 || i == len(e.Record.Samples)-1 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
