package models

// Account is the externally verified identity acting on the platform.
// It is never persisted here; the bearer token is the source of truth and
// every owned record references it by id only.
type Account struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	IsSuperuser bool   `json:"is_superuser"`
}
