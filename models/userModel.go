package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultAvatar = "https://cdn-icons-png.flaticon.com/128/3177/3177440.png"

type User struct {
	gorm.Model
	Username             string         `json:"username" gorm:"uniqueIndex"`
	Email                string         `json:"email" gorm:"uniqueIndex"`
	Password             string         `json:"-"`
	Addresses            datatypes.JSON `json:"address"`
	Avatar               string         `json:"avatar"`
	Role                 string         `json:"role"`
	Favourites           datatypes.JSON `json:"favourites"`
	Cart                 datatypes.JSON `json:"cart"`
	ResetPasswordToken   string         `json:"-"`
	ResetPasswordExpires time.Time      `json:"-"`
}

type LoginData struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// FavouriteIDs decodes the favourites column. A null or malformed column
// is treated as an empty list.
func (u *User) FavouriteIDs() []uint {
	var ids []uint
	if len(u.Favourites) == 0 {
		return ids
	}
	if err := json.Unmarshal(u.Favourites, &ids); err != nil {
		return nil
	}
	return ids
}

// SetFavouriteIDs rewrites the favourites column whole.
func (u *User) SetFavouriteIDs(ids []uint) error {
	if ids == nil {
		ids = []uint{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	u.Favourites = datatypes.JSON(raw)
	return nil
}

// AddressList decodes the saved address column.
func (u *User) AddressList() []string {
	var addrs []string
	if len(u.Addresses) == 0 {
		return addrs
	}
	if err := json.Unmarshal(u.Addresses, &addrs); err != nil {
		return nil
	}
	return addrs
}
