// Package store persists user-saved weather snapshots in SQLite and owns
// all reads, writes, and CSV export over them.
package store

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("weather record not found")

	// ErrInvalidInput is returned when caller-supplied record data fails
	// validation.
	ErrInvalidInput = errors.New("invalid weather record input")

	// ErrPersistence wraps any failure from the underlying database. The
	// enclosing transaction is rolled back before it surfaces.
	ErrPersistence = errors.New("weather record persistence failure")
)

// WeatherRecord is a persisted weather snapshot. Metric fields are stored
// as display-formatted text. Identity and SavedOn are assigned by the
// store at creation.
type WeatherRecord struct {
	ID          int64     `json:"id"`
	Location    string    `json:"location"`
	Country     string    `json:"country"`
	Main        string    `json:"main"`
	Description string    `json:"description"`
	Temp        string    `json:"temp"`
	Humidity    string    `json:"humidity"`
	Pressure    string    `json:"pressure"`
	Wind        string    `json:"wind"`
	SavedOn     time.Time `json:"saved_on"`
}

// RecordFields are the caller-supplied attributes of a new record.
type RecordFields struct {
	Location    string `json:"location" validate:"required"`
	Country     string `json:"country" validate:"required"`
	Main        string `json:"main" validate:"required"`
	Description string `json:"description" validate:"required"`
	Temp        string `json:"temp" validate:"required"`
	Humidity    string `json:"humidity" validate:"required"`
	Pressure    string `json:"pressure" validate:"required"`
	Wind        string `json:"wind" validate:"required"`
}

func (f RecordFields) validate() error {
	if f.Location == "" || f.Country == "" || f.Main == "" || f.Description == "" ||
		f.Temp == "" || f.Humidity == "" || f.Pressure == "" || f.Wind == "" {
		return fmt.Errorf("%w: all record fields are required", ErrInvalidInput)
	}
	return nil
}

// RecordPatch is a partial update against the fixed set of record
// attributes. Nil fields are left untouched; unknown JSON keys are
// dropped on decode rather than treated as an error.
type RecordPatch struct {
	Location    *string `json:"location"`
	Country     *string `json:"country"`
	Main        *string `json:"main"`
	Description *string `json:"description"`
	Temp        *string `json:"temp"`
	Humidity    *string `json:"humidity"`
	Pressure    *string `json:"pressure"`
	Wind        *string `json:"wind"`
}

// assignments renders the patch as SQL SET clauses, one per present field.
func (p RecordPatch) assignments() ([]string, []any) {
	var sets []string
	var args []any

	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	add("location", p.Location)
	add("country", p.Country)
	add("main", p.Main)
	add("description", p.Description)
	add("temp", p.Temp)
	add("humidity", p.Humidity)
	add("pressure", p.Pressure)
	add("wind", p.Wind)

	return sets, args
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
