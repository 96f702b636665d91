package forms

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/phone"
)

// photoURLField sets the driver photo to a hosted image link.
const photoURLField = "photo_url"

func parsePhotoURL(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", invalid(photoURLField, "must be an http or https link")
	}
	return value, nil
}

type driverEntity struct {
	driver models.Driver
	cc     string
}

func (e *driverEntity) set(field, value string) error {
	value = strings.TrimSpace(value)
	d := &e.driver

	switch field {
	case "name":
		d.Name = value
	case "phone":
		d.Phone = phone.Normalize(value, e.cc)
	case "email":
		d.Email = value
	case "license_number":
		d.LicenseNumber = value
	case "vehicle_assigned":
		d.VehicleAssigned = value
	case "status":
		switch s := strings.ToLower(value); s {
		case models.DriverAvailable, models.DriverBusy, models.DriverOffline:
			d.Status = s
		default:
			return invalid(field, "must be available, busy or offline")
		}
	default:
		return invalid(field, "unknown field")
	}
	return nil
}

func (e *driverEntity) fields() []Field {
	d := e.driver
	return []Field{
		{"name", d.Name},
		{"phone", d.Phone},
		{"email", d.Email},
		{"license_number", d.LicenseNumber},
		{"vehicle_assigned", d.VehicleAssigned},
		{"status", d.Status},
	}
}

func (e *driverEntity) validate() error {
	d := e.driver
	if d.Name == "" {
		return invalid("name", "is required")
	}
	if d.Phone == "" {
		return invalid("phone", "is required")
	}
	if d.Email != "" {
		if _, err := mail.ParseAddress(d.Email); err != nil {
			return invalid("email", "is not a valid address")
		}
	}
	return nil
}

func (e *driverEntity) payload(images []string, withImages bool) any {
	if withImages {
		return e.driver.WithImages(images)
	}
	return e.driver.WithoutImages()
}
