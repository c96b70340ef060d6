package domain

// GuestUsername is the username of a logged out session.
const GuestUsername = "Guest"

type Session struct {
	Username       string
	IsLoggedIn     bool
	PreferDarkMode bool
}
