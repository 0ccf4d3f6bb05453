package models

type Category struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type Skill struct {
	BaseModel
	Name       string  `gorm:"uniqueIndex;not null" json:"name"`
	CategoryID *string `gorm:"type:uuid;index" json:"category_id,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
