package models

type Account struct {
	BaseModel

	Username  string `json:"username" gorm:"uniqueIndex"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"-"`
	IsStaff   bool   `json:"is_staff"`

	Recipes []Recipe `json:"recipes,omitempty" gorm:"foreignKey:AuthorID"`

	IsSubscribed bool `json:"is_subscribed" gorm:"-"`
}
