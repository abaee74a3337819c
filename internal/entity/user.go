package entity

type User struct {
	ID       uint   `gorm:"primaryKey;column:id" json:"-"`
	Name     string `gorm:"not null;column:name" json:"name"`
	Email    string `gorm:"unique;not null;column:email" json:"email"`
	Password string `gorm:"not null;column:password" json:"-"`
}
