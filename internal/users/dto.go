package users

import "github.com/massfitdev/massfit-bot/pkg/db/models"

// CreateUserDTO carries the fields captured from a first /start contact.
type CreateUserDTO struct {
	TgID      int64
	Username  string
	FirstName string
	LastName  string
	FullName  string
}

// ToModel maps the DTO onto the persistence model. Empty strings become NULLs.
func (d CreateUserDTO) ToModel() *models.User {
	user := &models.User{TgID: d.TgID}
	if d.Username != "" {
		user.Username = &d.Username
	}
	if d.FirstName != "" {
		user.FirstName = &d.FirstName
	}
	if d.LastName != "" {
		user.LastName = &d.LastName
	}
	if d.FullName != "" {
		user.FullName = &d.FullName
	}
	return user
}
