package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Book struct {
	gorm.Model
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	Price       float64        `json:"price"`
	Description string         `json:"desc"`
	Language    string         `json:"language"`
	Images      datatypes.JSON `json:"urls"`
	Category    string         `json:"category"`
}

// Category groups books by title. Titles are unique case-insensitively;
// books reference the category by its title.
type Category struct {
	gorm.Model
	Title string `json:"title" gorm:"uniqueIndex"`
	Image string `json:"img"`
}
