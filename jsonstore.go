package minibank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// persistAccount is the on-disk shape of an account. Balance is a plain
// JSON number.
type persistAccount struct {
	PIN     string  `json:"pin"`
	Balance float64 `json:"balance"`
	Age     int     `json:"age"`
	VIP     bool    `json:"vip"`
}

// JSONStore persists the registry as a single JSON object mapping account
// name to record. Every save rewrites the file in full.
type JSONStore struct {
	path string
	log  *zerolog.Logger
}

var _ Store = (*JSONStore)(nil)

func NewJSONStore(path string, log *zerolog.Logger) *JSONStore {
	return &JSONStore{
		path: path,
		log:  log,
	}
}

// Load reads the snapshot. A missing file is an empty bank, not an error.
func (s *JSONStore) Load() (map[string]Account, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Account{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	defer f.Close()

	var raw map[string]persistAccount
	if err = json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}

	accts := make(map[string]Account, len(raw))
	for name, pa := range raw {
		if name == "" || pa.PIN == "" || pa.Balance < 0 || pa.Age <= 0 {
			return nil, fmt.Errorf("%w: invalid record %q", ErrCorruptStore, name)
		}
		accts[name] = Account{
			Name:      name,
			PINDigest: pa.PIN,
			Balance:   decimal.NewFromFloat(pa.Balance),
			Age:       pa.Age,
			VIP:       pa.VIP,
		}
	}
	return accts, nil
}

// Save atomically replaces the snapshot: the new state is written to a
// temporary file in the same directory and renamed over the target, so a
// crash mid-write never leaves a truncated store behind.
func (s *JSONStore) Save(accts map[string]Account) error {
	raw := make(map[string]persistAccount, len(accts))
	for name, a := range accts {
		raw[name] = persistAccount{
			PIN:     a.PINDigest,
			Balance: a.Balance.InexactFloat64(),
			Age:     a.Age,
			VIP:     a.VIP,
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err = enc.Encode(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.log.Debug().
		Str("path", s.path).
		Int("accounts", len(accts)).
		Msg("snapshot written")
	return nil
}
