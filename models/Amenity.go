package models

const (
	AmenityUnitFeature = "UnitFeature"
	AmenityCommonArea  = "CommonArea"
)

var AmenityCategories = []string{AmenityUnitFeature, AmenityCommonArea}

type Amenity struct {
	Base
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"size:50;not null"` // UnitFeature, CommonArea
	IsBookable  bool   `json:"is_bookable"`
}
