package models

type Tower struct {
	Base
	Name     string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Location string `json:"location" gorm:"size:255"`

	Units []Unit `json:"-" gorm:"foreignKey:TowerID"`
}
