package models

import (
	"time"

	"gorm.io/datatypes"
)

type BeneficiaryStory struct {
	Name  string `json:"name"`
	Story string `json:"story"`
	Photo string `json:"photo,omitempty"`
}

type Program struct {
	ID                 uint                                  `gorm:"primaryKey" json:"id"`
	Title              string                                `gorm:"size:200;not null" json:"title"`
	Description        string                                `gorm:"type:text;not null" json:"description"`
	Goals              datatypes.JSONSlice[string]           `json:"goals"`
	Photos             datatypes.JSONSlice[string]           `json:"photos"`
	BeneficiaryStories datatypes.JSONSlice[BeneficiaryStory] `json:"beneficiary_stories"`
	IsActive           bool                                  `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time                             `json:"created_at"`
	UpdatedAt          time.Time                             `json:"updated_at"`
}
