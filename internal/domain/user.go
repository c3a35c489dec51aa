package domain

import "errors"

type User struct {
	ID    string
	Name  string
	Email string
}

func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("user id must not be empty")
	}
	return nil
}
