package asset

import (
	"fmt"
	"strings"
	"time"
)

// Asset represents an inventory record
type Asset struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	SerialNumber    string    `json:"serialNumber"`
	Category        Category  `json:"category"`
	Status          Status    `json:"status"`
	AcquisitionDate Date      `json:"acquisitionDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Category represents the kind of equipment
type Category string

const (
	CategoryComputer         Category = "COMPUTER"
	CategoryPeripheral       Category = "PERIPHERAL"
	CategoryNetworkEquipment Category = "NETWORK_EQUIPMENT"
	CategoryServerInfra      Category = "SERVER_INFRA"
	CategoryMobileDevice     Category = "MOBILE_DEVICE"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryComputer,
	CategoryPeripheral,
	CategoryNetworkEquipment,
	CategoryServerInfra,
	CategoryMobileDevice,
}

// Status represents the lifecycle state of an asset
type Status string

const (
	StatusInUse       Status = "IN_USE"
	StatusInStock     Status = "IN_STOCK"
	StatusMaintenance Status = "MAINTENANCE"
	StatusRetired     Status = "RETIRED"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusInUse,
	StatusInStock,
	StatusMaintenance,
	StatusRetired,
}

var categoryLabels = map[Category]string{
	CategoryComputer:         "Computador",
	CategoryPeripheral:       "Periférico",
	CategoryNetworkEquipment: "Equipamento de rede",
	CategoryServerInfra:      "Infra de servidor",
	CategoryMobileDevice:     "Dispositivo móvel",
}

var statusLabels = map[Status]string{
	StatusInUse:       "Em uso",
	StatusInStock:     "Em estoque",
	StatusMaintenance: "Manutenção",
	StatusRetired:     "Descartado",
}

// ParseCategory returns the category matching s exactly.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	_, ok := categoryLabels[c]
	return c, ok
}

// ParseStatus returns the status matching s exactly.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	_, ok := statusLabels[st]
	return st, ok
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label
func (c Category) Label() string { return categoryLabels[c] }

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label
func (s Status) Label() string { return statusLabels[s] }

// Date is a calendar date without time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

const DateLayout = "2006-01-02"

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// After reports whether d falls on a later day than t.
func (d Date) After(t time.Time) bool {
	return d.Time.After(NewDate(t).Time)
}

// New creates an asset from already validated fields.
func New(name, serial string, category Category, status Status, acquired Date) *Asset {
	now := time.Now().UTC()
	return &Asset{
		Name:            strings.TrimSpace(name),
		SerialNumber:    strings.TrimSpace(serial),
		Category:        category,
		Status:          status,
		AcquisitionDate: acquired,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Apply overwrites the mutable fields and bumps UpdatedAt.
func (a *Asset) Apply(name, serial string, category Category, status Status, acquired Date) {
	a.Name = strings.TrimSpace(name)
	a.SerialNumber = strings.TrimSpace(serial)
	a.Category = category
	a.Status = status
	a.AcquisitionDate = acquired
	a.UpdatedAt = time.Now().UTC()
}
