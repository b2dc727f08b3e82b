package models

// User is an API account. Devices authenticate with the ingest key instead.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
