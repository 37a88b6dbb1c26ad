package models

type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Slug  string `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	Color string `gorm:"size:7;not null;uniqueIndex" json:"color"`
}
