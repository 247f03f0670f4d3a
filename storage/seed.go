package storage

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type Fixtures struct {
	Users        []UserFixture     `yaml:"users"`
	Towers       []TowerFixture    `yaml:"towers"`
	Amenities    []AmenityFixture  `yaml:"amenities"`
	UnitTemplate UnitTemplate      `yaml:"unit_template"`
	Lease        LeaseFixture      `yaml:"lease"`
	Providers    []ProviderFixture `yaml:"providers"`
}

type UserFixture struct {
	Email      string `yaml:"email"`
	Password   string `yaml:"password"`
	Role       string `yaml:"role"`
	SuperAdmin bool   `yaml:"super_admin"`
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Phone      string `yaml:"phone"`
}

// TowerFixture expands into Units units numbered <prefix>-101, <prefix>-102...
type TowerFixture struct {
	Name       string `yaml:"name"`
	Location   string `yaml:"location"`
	UnitPrefix string `yaml:"unit_prefix"`
	Units      int    `yaml:"units"`
}

type AmenityFixture struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Bookable    bool   `yaml:"bookable"`
}

type UnitTemplate struct {
	Floor        int      `yaml:"floor"`
	MonthlyRent  string   `yaml:"monthly_rent"`
	Photos       []string `yaml:"photos"`
	NearbyPlaces []string `yaml:"nearby_places"`
}

type LeaseFixture struct {
	Resident string `yaml:"resident"`
	Rent     string `yaml:"rent"`
	Days     int    `yaml:"days"`
}

type ProviderFixture struct {
	Name         string  `yaml:"name"`
	ServiceType  string  `yaml:"service_type"`
	PhoneNumber  string  `yaml:"phone_number"`
	Rating       float64 `yaml:"rating"`
	Availability string  `yaml:"availability"`
}

// LoadFixtures parses the demo data compiled into the binary.
func LoadFixtures() (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return f, fmt.Errorf("parse seed fixtures: %w", err)
	}
	return f, nil
}
