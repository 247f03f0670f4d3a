package models

var ServiceTypes = []string{"Maid", "Cook", "Driver", "Cleaner", "Plumber", "Electrician", "Carpenter"}

type ServiceProvider struct {
	Base
	Name         string  `json:"name" gorm:"size:100;not null"`
	ServiceType  string  `json:"service_type" gorm:"size:50;not null;index"`
	PhoneNumber  string  `json:"phone_number" gorm:"size:20;not null"`
	Rating       float64 `json:"rating"`
	IsVerified   bool    `json:"is_verified"`
	PhotoURL     string  `json:"photo_url" gorm:"size:255"`
	Availability string  `json:"availability" gorm:"size:100"`
}
