package models

import "time"

type NewsCategory string

const (
	NewsCategoryNews  NewsCategory = "news"
	NewsCategoryEvent NewsCategory = "event"
	NewsCategoryStory NewsCategory = "story"
)

type News struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Title         string       `gorm:"size:200;not null" json:"title"`
	Content       string       `gorm:"type:text;not null" json:"content"`
	Excerpt       string       `gorm:"size:500;not null" json:"excerpt"`
	FeaturedImage string       `gorm:"size:500" json:"featured_image"`
	Category      NewsCategory `gorm:"size:20;not null;index" json:"category"`
	Date          time.Time    `gorm:"not null;index" json:"date"`
	IsActive      bool         `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
