package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	TransmissionAutomatic = "Automatic"
	TransmissionManual    = "Manual"

	DriverAvailable = "available"
	DriverBusy      = "busy"
	DriverOffline   = "offline"
)

// Record is a listed entity.
type Record interface {
	GetID() string
	Summary() string
}

// Car is a rental listing. Images is nil in a create payload and is then
// omitted from the request body.
type Car struct {
	ID             ID          `json:"id,omitempty"`
	Name           string      `json:"name"`
	Model          string      `json:"model"`
	Year           int         `json:"year"`
	PricePerDay    json.Number `json:"price_per_day,omitempty"`
	WhatsAppNumber string      `json:"whatsapp_number"`
	Description    string      `json:"description"`
	Location       string      `json:"location"`
	Seats          int         `json:"seats"`
	Doors          int         `json:"doors"`
	Transmission   string      `json:"transmission"`
	Available      bool        `json:"available"`
	StartDate      Date        `json:"start_date"`
	EndDate        Date        `json:"end_date"`
	Images         *ImageList  `json:"images,omitempty"`
	ImageURL       string      `json:"image_url,omitempty"`
}

// NewCar returns a car with the console defaults.
func NewCar(now time.Time) Car {
	return Car{
		Year:         now.Year(),
		Seats:        5,
		Doors:        4,
		Transmission: TransmissionAutomatic,
		Available:    true,
	}
}

// ImageRefs returns the car's images, falling back to the legacy single
// image_url field.
func (c Car) ImageRefs() []string {
	if c.Images != nil && len(*c.Images) > 0 {
		return append([]string(nil), (*c.Images)...)
	}
	if c.ImageURL != "" {
		return []string{c.ImageURL}
	}
	return nil
}

// WithImages returns a copy carrying exactly refs as its image set.
func (c Car) WithImages(refs []string) Car {
	l := ImageList(append([]string{}, refs...))
	c.Images = &l
	c.ImageURL = ""
	return c
}

// WithoutImages returns a copy with no image fields set.
func (c Car) WithoutImages() Car {
	c.Images = nil
	c.ImageURL = ""
	return c
}

func (c Car) GetID() string { return string(c.ID) }

func (c Car) Summary() string {
	avail := "available"
	if !c.Available {
		avail = "unavailable"
	}
	return fmt.Sprintf("%s %s (%d) %s/day, %s", c.Name, c.Model, c.Year, c.PricePerDay, avail)
}

// Driver is a chauffeur profile. The media set holds at most one photo.
type Driver struct {
	ID              ID      `json:"id,omitempty"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	LicenseNumber   string  `json:"license_number"`
	VehicleAssigned string  `json:"vehicle_assigned"`
	Status          string  `json:"status"`
	PhotoURL        *string `json:"photo_url,omitempty"`
}

func NewDriver() Driver {
	return Driver{Status: DriverAvailable}
}

func (d Driver) ImageRefs() []string {
	if d.PhotoURL == nil || *d.PhotoURL == "" {
		return nil
	}
	return []string{*d.PhotoURL}
}

// WithImages sets photo_url to the first reference, or "" when refs is empty.
func (d Driver) WithImages(refs []string) Driver {
	photo := ""
	if len(refs) > 0 {
		photo = refs[0]
	}
	d.PhotoURL = &photo
	return d
}

func (d Driver) WithoutImages() Driver {
	d.PhotoURL = nil
	return d
}

func (d Driver) GetID() string { return string(d.ID) }

func (d Driver) Summary() string {
	return fmt.Sprintf("%s %s [%s]", d.Name, d.Phone, d.Status)
}

// Term is a rental terms & policies section.
type Term struct {
	ID           ID     `json:"id,omitempty"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	DisplayOrder int    `json:"display_order"`
}

func (t Term) GetID() string { return string(t.ID) }

func (t Term) Summary() string {
	return fmt.Sprintf("#%d %s", t.DisplayOrder, t.Title)
}

// DecodeRecord unmarshals a single raw entity of the given kind.
func DecodeRecord(kind Kind, raw json.RawMessage) (Record, error) {
	switch kind {
	case KindCar:
		var c Car
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode car: %w", err)
		}
		return c, nil
	case KindDriver:
		var d Driver
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode driver: %w", err)
		}
		return d, nil
	case KindTerm:
		var t Term
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("decode term: %w", err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
