package minibank

//go:generate mockgen -destination mocks/store.go -package mocks github.com/arhyth/minibank Store

// Store is the durable representation of all accounts. Save replaces the
// whole snapshot; Load returns an empty map when no snapshot exists yet.
type Store interface {
	Load() (map[string]Account, error)
	Save(accts map[string]Account) error
}
