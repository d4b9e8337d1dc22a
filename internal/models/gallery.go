package models

import "time"

type GalleryCategory string

const (
	GalleryCategoryLearners  GalleryCategory = "learners"
	GalleryCategoryCommunity GalleryCategory = "community"
	GalleryCategorySchool    GalleryCategory = "school"
)

type GalleryItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"size:500" json:"description"`
	ImageURL    string          `gorm:"size:500;not null" json:"image_url"`
	Category    GalleryCategory `gorm:"size:20;not null;index" json:"category"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
