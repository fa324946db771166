// Package fixture generates synthetic JSON documents to benchmark against.
package fixture

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-faker/faker/v4"
)

// Record is one element of a generated document. It doubles as the
// user-defined target structure for parsers that decode into structs.
type Record struct {
	ID      string   `json:"id" faker:"uuid_hyphenated"`
	Name    string   `json:"name" faker:"name"`
	Email   string   `json:"email" faker:"email"`
	Phone   string   `json:"phone" faker:"phone_number"`
	URL     string   `json:"url" faker:"url"`
	IP      string   `json:"ip" faker:"ipv4"`
	Created int64    `json:"created" faker:"unix_time"`
	Active  bool     `json:"active"`
	Score   float64  `json:"score"`
	Bio     string   `json:"bio" faker:"paragraph"`
	Tags    []string `json:"tags" faker:"-"`
	Address Address  `json:"address"`
	Parent  *string  `json:"parent" faker:"-"`
}

type Address struct {
	Street string  `json:"street" faker:"sentence"`
	City   string  `json:"city" faker:"word"`
	Zip    string  `json:"zip" faker:"oneof: 10115, 94107, 75001"`
	Lat    float64 `json:"lat" faker:"lat"`
	Lon    float64 `json:"lon" faker:"long"`
}

// tagsPerRecord is the length of every Record.Tags.
const tagsPerRecord = 3

// NewRecord returns a faker populated record.
func NewRecord() (Record, error) {
	var r Record
	if err := faker.FakeData(&r); err != nil {
		return r, err
	}
	r.Tags = make([]string, tagsPerRecord)
	for i := range r.Tags {
		r.Tags[i] = faker.Word()
	}
	return r, nil
}

// Generate writes a JSON array of n records to w. Records are written one at
// a time, so big documents are never held in memory.
func Generate(w io.Writer, n int) error {
	if n < 0 {
		return fmt.Errorf("bad record count: %d", n)
	}
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for i := 0; i < n; i++ {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		r, err := NewRecord()
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}
