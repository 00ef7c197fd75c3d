package minibank_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arhyth/minibank"
	"github.com/arhyth/minibank/mocks"
)

// scriptedSecrets feeds a fixed sequence of PIN entries and records how the
// auth service consumed them.
type scriptedSecrets struct {
	pins     []string
	reads    int
	rejected []int
	readErr  error
}

func (s *scriptedSecrets) ReadPIN() (string, error) {
	if s.readErr != nil {
		return "", s.readErr
	}
	if s.reads >= len(s.pins) {
		return "", errors.New("secret script exhausted")
	}
	pin := s.pins[s.reads]
	s.reads++
	return pin, nil
}

func (s *scriptedSecrets) PINRejected(remaining int) {
	s.rejected = append(s.rejected, remaining)
}

func newAuthFixture(tt *testing.T) (*minibank.AuthService, minibank.CredentialHasher) {
	tt.Helper()
	reqrd := require.New(tt)
	ctrl := gomock.NewController(tt)
	store := mocks.NewMockStore(ctrl)
	hasher := minibank.SHA256Hasher{}
	store.EXPECT().Load().Return(map[string]minibank.Account{
		"Bob": {
			Name:      "Bob",
			PINDigest: hasher.Digest("123456"),
			Balance:   decimal.Zero,
			Age:       25,
		},
	}, nil)
	log := zerolog.Nop()
	reg, err := minibank.NewRegistry(store, &log)
	reqrd.Nil(err)
	return minibank.NewAuthService(reg, hasher, 3, &log), hasher
}

func TestLogin(t *testing.T) {
	t.Run("unknown name terminates without reading a PIN", func(tt *testing.T) {
		as := assert.New(tt)
		auth, _ := newAuthFixture(tt)
		secrets := &scriptedSecrets{pins: []string{"123456"}}
		outcome, err := auth.Login("Nobody", secrets)
		as.Nil(err)
		as.Equal(minibank.NoSuchAccount, outcome)
		as.Zero(secrets.reads)
		as.Empty(secrets.rejected)
	})

	t.Run("correct PIN authenticates on the first attempt", func(tt *testing.T) {
		as := assert.New(tt)
		auth, _ := newAuthFixture(tt)
		secrets := &scriptedSecrets{pins: []string{"123456"}}
		outcome, err := auth.Login("Bob", secrets)
		as.Nil(err)
		as.Equal(minibank.Authenticated, outcome)
		as.Equal(1, secrets.reads)
		as.Empty(secrets.rejected)
	})

	t.Run("mismatches consume attempts and report the remaining count", func(tt *testing.T) {
		as := assert.New(tt)
		auth, _ := newAuthFixture(tt)
		secrets := &scriptedSecrets{pins: []string{"000000", "999999", "123456"}}
		outcome, err := auth.Login("Bob", secrets)
		as.Nil(err)
		as.Equal(minibank.Authenticated, outcome)
		as.Equal(3, secrets.reads)
		as.Equal([]int{2, 1}, secrets.rejected)
	})

	t.Run("exhausting all attempts locks and never prompts a fourth time", func(tt *testing.T) {
		as := assert.New(tt)
		auth, _ := newAuthFixture(tt)
		secrets := &scriptedSecrets{pins: []string{"000000", "111111", "222222", "123456"}}
		outcome, err := auth.Login("Bob", secrets)
		as.Nil(err)
		as.Equal(minibank.Locked, outcome)
		as.Equal(3, secrets.reads)
		as.Equal([]int{2, 1, 0}, secrets.rejected)
	})

	t.Run("secret source failure aborts the sequence", func(tt *testing.T) {
		as := assert.New(tt)
		auth, _ := newAuthFixture(tt)
		boom := errors.New("stdin closed")
		secrets := &scriptedSecrets{readErr: boom}
		_, err := auth.Login("Bob", secrets)
		as.ErrorIs(err, boom)
	})

	t.Run("surrounding whitespace in the entry is ignored", func(tt *testing.T) {
		as := assert.New(tt)
		auth, _ := newAuthFixture(tt)
		secrets := &scriptedSecrets{pins: []string{"  123456  "}}
		outcome, err := auth.Login("Bob", secrets)
		as.Nil(err)
		as.Equal(minibank.Authenticated, outcome)
	})
}
