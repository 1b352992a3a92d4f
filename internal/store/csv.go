package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
)

var csvHeader = []string{
	"ID", "Location", "Country", "Main", "Description",
	"Temp (°C)", "Humidity", "Pressure", "Wind", "Saved On",
}

// ExportCSV renders records as a CSV document. An id of 0 exports all
// records; a positive id exports only the matching record. ok is false
// when no rows matched, in which case no document is produced.
func (s *Store) ExportCSV(ctx context.Context, id int64) (data []byte, filename string, ok bool, err error) {
	var records []WeatherRecord
	if id > 0 {
		records, err = s.queryRecords(ctx, selectRecord+` WHERE id = ? ORDER BY saved_on DESC, id DESC`, id)
	} else {
		records, err = s.GetAll(ctx)
	}
	if err != nil {
		return nil, "", false, err
	}
	if len(records) == 0 {
		return nil, "", false, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(csvHeader)
	for _, rec := range records {
		savedOn := ""
		if !rec.SavedOn.IsZero() {
			savedOn = rec.SavedOn.Format("2006-01-02 15:04:05")
		}
		w.Write([]string{
			strconv.FormatInt(rec.ID, 10),
			rec.Location,
			rec.Country,
			rec.Main,
			rec.Description,
			rec.Temp,
			rec.Humidity,
			rec.Pressure,
			rec.Wind,
			savedOn,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", false, persistErr("write csv", err)
	}

	filename = "weather_records.csv"
	if id > 0 {
		filename = fmt.Sprintf("weather_record_%d.csv", id)
	}
	return buf.Bytes(), filename, true, nil
}
