package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/semrekkers/rowmap"
	"github.com/semrekkers/rowmap/internal/config"
)

// writeRecords writes one line per record. JSON lines keep the column order and encode NULL as null;
// text lines are tab separated col=value pairs with NULL written as NULL.
func writeRecords(w io.Writer, format string, records []rowmap.Record) error {
	bw := bufio.NewWriter(w)
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(bw)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
	case config.FormatText:
		for _, r := range records {
			first := true
			for column, v := range r.All() {
				if !first {
					bw.WriteByte('\t')
				}
				first = false
				text := "NULL"
				if v.Valid {
					text = v.Some
				}
				fmt.Fprintf(bw, "%s=%s", column, text)
			}
			bw.WriteByte('\n')
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return bw.Flush()
}
