package db_models

type User struct {
	BaseModel
	Email          string  `gorm:"uniqueIndex;not null"`
	FullName       string  `gorm:"not null"`
	HashedPassword string  `gorm:"not null"`
	Gender         *string `gorm:"size:16"`
	Age            *int
	Height         *float64 // cm
	Weight         *float64 // kg
	IsActive       bool     `gorm:"not null;default:true"`
}
