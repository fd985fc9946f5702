package models

type User struct {
	BaseModel
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Theme        Theme  `gorm:"type:varchar(10);default:'LIGHT'" json:"theme"`

	// Relations
	Movies []Movie `gorm:"foreignKey:UserID" json:"-"`
}

// PublicUser is the owner projection embedded in movie responses.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
