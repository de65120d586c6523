package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// CartLine is one (book, quantity) pair inside a user's cart.
type CartLine struct {
	BookID   uint `json:"bookId"`
	Quantity int  `json:"quantity"`
}

// Cart is the sub-document embedded in the user row. It is value-owned
// by the user and always rewritten whole; orders take an immutable copy
// of its lines instead of referencing it.
type Cart struct {
	Books   []CartLine `json:"books"`
	Address string     `json:"address"`
}

// NormalizeCart decodes the cart column into the canonical
// {books, address} shape. Older rows stored the cart as a bare line
// array; those are folded into the object shape with an empty address.
// Anything unreadable degrades to an empty cart.
func NormalizeCart(raw datatypes.JSON) Cart {
	cart := Cart{Books: []CartLine{}}
	if len(raw) == 0 {
		return cart
	}
	if err := json.Unmarshal(raw, &cart); err == nil {
		if cart.Books == nil {
			cart.Books = []CartLine{}
		}
		return cart
	}
	var legacy []CartLine
	if err := json.Unmarshal(raw, &legacy); err == nil && legacy != nil {
		return Cart{Books: legacy}
	}
	return Cart{Books: []CartLine{}}
}

// AddBook increments the quantity of an existing line by one, or appends
// a new line with quantity one. It reports whether the book was already
// in the cart.
func (c *Cart) AddBook(bookID uint) bool {
	for i := range c.Books {
		if c.Books[i].BookID == bookID {
			c.Books[i].Quantity++
			return true
		}
	}
	c.Books = append(c.Books, CartLine{BookID: bookID, Quantity: 1})
	return false
}

// SetQuantity sets the quantity of an existing line and reports whether
// the line was found. Callers must reject quantities below one before
// calling.
func (c *Cart) SetQuantity(bookID uint, quantity int) bool {
	for i := range c.Books {
		if c.Books[i].BookID == bookID {
			c.Books[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveBook drops the line for the given book. Removing an absent book
// is a no-op.
func (c *Cart) RemoveBook(bookID uint) {
	for i := range c.Books {
		if c.Books[i].BookID == bookID {
			c.Books = append(c.Books[:i], c.Books[i+1:]...)
			return
		}
	}
}

// Clear empties the cart and its draft address.
func (c *Cart) Clear() {
	c.Books = []CartLine{}
	c.Address = ""
}

// ToJSON encodes the cart for storage in the user row.
func (c Cart) ToJSON() (datatypes.JSON, error) {
	if c.Books == nil {
		c.Books = []CartLine{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
