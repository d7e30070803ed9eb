package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:varchar(255)"`
	Foods       []Food `json:"-" gorm:"foreignKey:CategoryID"`
}

type Food struct {
	gorm.Model
	Name          string         `json:"name" gorm:"type:varchar(200);not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Price         float64        `json:"price" gorm:"not null"`
	OriginalPrice *float64       `json:"originalPrice"`
	Image         string         `json:"image" gorm:"type:varchar(500)"`
	CategoryID    uint           `json:"categoryId" gorm:"not null;index"`
	Category      *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Rating        float64        `json:"rating" gorm:"default:0"`
	ReviewsCount  int            `json:"reviewsCount" gorm:"default:0"`
	PrepTime      string         `json:"prepTime" gorm:"type:varchar(50)"`
	Ingredients   datatypes.JSON `json:"ingredients"`
	IsSpecial     bool           `json:"isSpecial" gorm:"default:false"`
	// No gorm default tag: gorm drops zero-valued fields carrying a default
	// from INSERT, which would store false as true. Callers set the value.
	IsAvailable bool `json:"isAvailable"`
}
