package minibank

import (
	"strings"

	"github.com/rs/zerolog"
)

// Outcome is the terminal state of one authentication sequence.
type Outcome int

const (
	Authenticated Outcome = iota
	NoSuchAccount
	Locked
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case NoSuchAccount:
		return "no such account"
	case Locked:
		return "locked"
	}
	return "unknown"
}

// SecretSource supplies PIN entries for one authentication sequence and is
// told how many attempts remain when an entry is rejected. It is the
// masked-input collaborator; the core never sees how entries are read.
type SecretSource interface {
	ReadPIN() (string, error)
	PINRejected(remaining int)
}

type AuthService struct {
	reg         *Registry
	hasher      CredentialHasher
	maxAttempts int
	log         *zerolog.Logger
}

func NewAuthService(reg *Registry, hasher CredentialHasher, maxAttempts int, log *zerolog.Logger) *AuthService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &AuthService{
		reg:         reg,
		hasher:      hasher,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Login runs one bounded authentication sequence for the named account.
// An unknown name terminates immediately: no PIN is read, no attempt is
// consumed, no digest is compared. Otherwise up to maxAttempts entries are
// read and compared by digest; exhausting them locks the sequence. Lockout
// is session-local, nothing is persisted.
//
// The returned error reports a failure of the SecretSource itself; the
// Outcome is meaningful only when it is nil.
func (s *AuthService) Login(name string, secrets SecretSource) (Outcome, error) {
	acct, err := s.reg.Get(name)
	if err != nil {
		return NoSuchAccount, nil
	}

	for remaining := s.maxAttempts; remaining > 0; remaining-- {
		pin, err := secrets.ReadPIN()
		if err != nil {
			return Locked, err
		}
		if s.hasher.Digest(strings.TrimSpace(pin)) == acct.PINDigest {
			s.log.Info().Str("account", name).Msg("login successful")
			return Authenticated, nil
		}
		secrets.PINRejected(remaining - 1)
	}

	s.log.Warn().
		Str("account", name).
		Int("attempts", s.maxAttempts).
		Msg("too many failed attempts, account locked")
	return Locked, nil
}
