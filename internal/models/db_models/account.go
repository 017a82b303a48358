package db_models

type Account struct {
	BaseModel
	DisplayName  string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	AvatarURL    string
}
