package fingerprint

import (
	"encoding/csv"
	"io"
	"strconv"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes the header "x,y,score" followed by one row per point.
func (r *AshlockResult) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "score"}); err != nil {
		return err
	}
	for _, pt := range r.Points {
		if err := cw.Write([]string{formatFloat(pt.X), formatFloat(pt.Y), formatFloat(pt.Score)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes one row per opponent and one column per turn, without a
// header.
func (r *TransitiveResult) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	row := make([]string, 0)
	for _, rates := range r.Data {
		row = row[:0]
		for _, v := range rates {
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
