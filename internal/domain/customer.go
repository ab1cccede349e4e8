package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func NewCustomer(name, email, phone string) (Customer, error) {
	c := Customer{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Phone: phone,
	}
	if err := c.Validate(); err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (c Customer) Validate() error {
	if err := required("id", c.ID); err != nil {
		return err
	}
	return required("name", c.Name)
}

func (c *Customer) SetName(name string) error {
	if err := required("name", name); err != nil {
		return err
	}
	c.Name = name
	return nil
}

func (c *Customer) SetEmail(email string) {
	c.Email = email
}

func (c *Customer) SetPhone(phone string) {
	c.Phone = phone
}

func (c Customer) Equal(other Customer) bool {
	return c == other
}

func (c Customer) String() string {
	return fmt.Sprintf("%s (%s, %s)", c.Name, c.Email, c.Phone)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
