package user

import "context"

// User is a viewer or channel owner. Channels are users: a video's owner id is
// the channel id its subscribers follow.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Verified bool   `json:"verified"`
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
}
