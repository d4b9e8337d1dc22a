package models

import (
	"time"

	"gorm.io/datatypes"
)

type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// SettingsID pins the singleton row so concurrent first reads cannot create
// more than one instance.
const SettingsID uint = 1

type Settings struct {
	ID              uint                            `gorm:"primaryKey" json:"id"`
	SiteTitle       string                          `gorm:"size:200" json:"site_title"`
	SiteDescription string                          `gorm:"size:500" json:"site_description"`
	ContactEmail    string                          `gorm:"size:100" json:"contact_email"`
	PhoneNumbers    datatypes.JSONSlice[string]     `json:"phone_numbers"`
	WhatsappNumbers datatypes.JSONSlice[string]     `json:"whatsapp_numbers"`
	Address         string                          `gorm:"size:300" json:"address"`
	SocialLinks     datatypes.JSONType[SocialLinks] `json:"social_links"`
	PrimaryColor    string                          `gorm:"size:20" json:"primary_color"`
	SecondaryColor  string                          `gorm:"size:20" json:"secondary_color"`
	AccentColor     string                          `gorm:"size:20" json:"accent_color"`
	CreatedAt       time.Time                       `json:"created_at"`
	UpdatedAt       time.Time                       `json:"updated_at"`
}

func DefaultSettings() Settings {
	return Settings{
		ID:              SettingsID,
		SiteTitle:       "Southern Hemisphere Foundation",
		SiteDescription: "Empowering orphaned and underprivileged children in Uganda",
		ContactEmail:    "southernhemispherefoundation@gmail.com",
		Address:         "Bunamwaya, Makindye, Wakiso District, Uganda",
		PrimaryColor:    "#0A3D62",
		SecondaryColor:  "#3DC1D3",
		AccentColor:     "#F6B93B",
	}
}
