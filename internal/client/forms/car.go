package forms

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/phone"
)

const (
	minYear = 2000
	maxYear = 2030
)

var (
	allowedSeats = []int{2, 4, 5, 7, 8}
	allowedDoors = []int{3, 4, 5}
)

type carEntity struct {
	car models.Car
	cc  string
}

func (e *carEntity) set(field, value string) error {
	value = strings.TrimSpace(value)
	c := &e.car

	switch field {
	case "name":
		c.Name = value
	case "model":
		c.Model = value
	case "description":
		c.Description = value
	case "location":
		c.Location = value
	case "whatsapp_number":
		c.WhatsAppNumber = phone.Normalize(value, e.cc)
	case "year":
		n, err := parseInt(field, value)
		if err != nil {
			return err
		}
		c.Year = n
	case "price_per_day":
		if value == "" {
			c.PricePerDay = ""
			return nil
		}
		if _, err := parsePrice(value); err != nil {
			return invalid(field, "must be a number")
		}
		c.PricePerDay = json.Number(value)
	case "seats":
		n, err := parseInt(field, value)
		if err != nil {
			return err
		}
		c.Seats = n
	case "doors":
		n, err := parseInt(field, value)
		if err != nil {
			return err
		}
		c.Doors = n
	case "transmission":
		switch strings.ToLower(value) {
		case "automatic":
			c.Transmission = models.TransmissionAutomatic
		case "manual":
			c.Transmission = models.TransmissionManual
		default:
			return invalid(field, "must be Automatic or Manual")
		}
	case "available":
		b, err := parseBool(field, value)
		if err != nil {
			return err
		}
		c.Available = b
	case "start_date", "end_date":
		d, err := models.ParseDate(value)
		if err != nil {
			return invalid(field, "%v", err)
		}
		if field == "start_date" {
			c.StartDate = d
		} else {
			c.EndDate = d
		}
	default:
		return invalid(field, "unknown field")
	}
	return nil
}

func (e *carEntity) fields() []Field {
	c := e.car
	return []Field{
		{"name", c.Name},
		{"model", c.Model},
		{"year", strconv.Itoa(c.Year)},
		{"price_per_day", c.PricePerDay.String()},
		{"whatsapp_number", c.WhatsAppNumber},
		{"location", c.Location},
		{"seats", strconv.Itoa(c.Seats)},
		{"doors", strconv.Itoa(c.Doors)},
		{"transmission", c.Transmission},
		{"available", strconv.FormatBool(c.Available)},
		{"start_date", string(c.StartDate)},
		{"end_date", string(c.EndDate)},
		{"description", c.Description},
	}
}

func (e *carEntity) validate() error {
	c := e.car
	switch {
	case c.Name == "":
		return invalid("name", "is required")
	case c.Model == "":
		return invalid("model", "is required")
	case c.WhatsAppNumber == "":
		return invalid("whatsapp_number", "is required")
	case c.Year < minYear || c.Year > maxYear:
		return invalid("year", "must be between %d and %d", minYear, maxYear)
	case c.PricePerDay == "":
		return invalid("price_per_day", "is required")
	}
	if p, err := parsePrice(c.PricePerDay.String()); err != nil || p < 0 {
		return invalid("price_per_day", "must be zero or more")
	}
	if !contains(allowedSeats, c.Seats) {
		return invalid("seats", "must be one of %v", allowedSeats)
	}
	if !contains(allowedDoors, c.Doors) {
		return invalid("doors", "must be one of %v", allowedDoors)
	}
	if c.Transmission != models.TransmissionAutomatic && c.Transmission != models.TransmissionManual {
		return invalid("transmission", "must be Automatic or Manual")
	}
	return nil
}

func (e *carEntity) payload(images []string, withImages bool) any {
	if withImages {
		return e.car.WithImages(images)
	}
	return e.car.WithoutImages()
}

// decimalNumber is the JSON number grammar.
var decimalNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

func parsePrice(value string) (float64, error) {
	if !decimalNumber.MatchString(value) {
		return 0, strconv.ErrSyntax
	}
	p, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, strconv.ErrRange
	}
	return p, nil
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalid(field, "must be a whole number")
	}
	return n, nil
}

func parseBool(field, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, invalid(field, "must be true or false")
	}
	return b, nil
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
