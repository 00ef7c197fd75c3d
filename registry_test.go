package minibank_test

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arhyth/minibank"
	"github.com/arhyth/minibank/mocks"
)

func TestRegistryRegister(t *testing.T) {
	t.Run("registered account survives a fresh process with zero balance", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		path := filepath.Join(tt.TempDir(), "users.json")
		log := zerolog.Nop()
		store := minibank.NewJSONStore(path, &log)
		reg, err := minibank.NewRegistry(store, &log)
		reqrd.Nil(err)

		digest := minibank.SHA256Hasher{}.Digest("123456")
		acct, err := reg.Register("Alice", digest, 30, false)
		reqrd.Nil(err)
		as.True(acct.Balance.IsZero())

		// a fresh registry over the same store simulates a restart
		reg2, err := minibank.NewRegistry(minibank.NewJSONStore(path, &log), &log)
		reqrd.Nil(err)
		got, err := reg2.Get("Alice")
		reqrd.Nil(err)
		as.Equal("Alice", got.Name)
		as.Equal(digest, got.PINDigest)
		as.True(got.Balance.IsZero())
	})

	t.Run("duplicate name is rejected without touching the store", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		store := mocks.NewMockStore(ctrl)
		log := zerolog.Nop()
		store.EXPECT().Load().Return(map[string]minibank.Account{}, nil)
		store.EXPECT().Save(gomock.Any()).Return(nil).Times(1)
		reg, err := minibank.NewRegistry(store, &log)
		reqrd.Nil(err)

		_, err = reg.Register("Bob", "digest-one", 25, false)
		reqrd.Nil(err)
		_, err = reg.Register("Bob", "digest-two", 40, true)
		as.ErrorAs(err, &minibank.ErrDuplicateAccount{})

		got, err := reg.Get("Bob")
		reqrd.Nil(err)
		as.Equal("digest-one", got.PINDigest)
		as.Equal(25, got.Age)
	})

	t.Run("failed save leaves the registry untouched", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		store := mocks.NewMockStore(ctrl)
		log := zerolog.Nop()
		store.EXPECT().Load().Return(map[string]minibank.Account{}, nil)
		store.EXPECT().Save(gomock.Any()).Return(minibank.ErrPersistence)
		reg, err := minibank.NewRegistry(store, &log)
		reqrd.Nil(err)

		_, err = reg.Register("Bob", "digest", 25, false)
		as.ErrorIs(err, minibank.ErrPersistence)
		as.False(reg.Exists("Bob"))
	})
}

func TestRegistryGet(t *testing.T) {
	t.Run("unknown name is not found", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		store := mocks.NewMockStore(ctrl)
		log := zerolog.Nop()
		store.EXPECT().Load().Return(map[string]minibank.Account{}, nil)
		reg, err := minibank.NewRegistry(store, &log)
		reqrd.Nil(err)

		_, err = reg.Get("Nobody")
		as.ErrorAs(err, &minibank.ErrNotFound{})
	})
}

func TestRegistryUpdate(t *testing.T) {
	seed := func(bal decimal.Decimal) map[string]minibank.Account {
		return map[string]minibank.Account{
			"Bob": {Name: "Bob", PINDigest: "digest", Balance: bal, Age: 25},
		}
	}

	t.Run("mutation persists before it is visible", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		store := mocks.NewMockStore(ctrl)
		log := zerolog.Nop()
		store.EXPECT().Load().Return(seed(decimal.Zero), nil)
		var saved map[string]minibank.Account
		store.EXPECT().
			Save(gomock.Any()).
			DoAndReturn(func(accts map[string]minibank.Account) error {
				saved = accts
				return nil
			})
		reg, err := minibank.NewRegistry(store, &log)
		reqrd.Nil(err)

		acct, err := reg.Update("Bob", func(a *minibank.Account) error {
			a.Balance = a.Balance.Add(decimal.NewFromInt(100))
			return nil
		})
		reqrd.Nil(err)
		as.True(acct.Balance.Equal(decimal.NewFromInt(100)))
		reqrd.NotNil(saved)
		as.True(saved["Bob"].Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("mutator error skips persistence and commit", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		store := mocks.NewMockStore(ctrl)
		log := zerolog.Nop()
		store.EXPECT().Load().Return(seed(decimal.NewFromInt(60)), nil)
		// no Save expectation: persisting here fails the test
		reg, err := minibank.NewRegistry(store, &log)
		reqrd.Nil(err)

		boom := minibank.ErrInsufficientFunds{
			Balance:   decimal.NewFromInt(60),
			Requested: decimal.NewFromInt(1000),
		}
		_, err = reg.Update("Bob", func(a *minibank.Account) error {
			return boom
		})
		as.ErrorAs(err, &minibank.ErrInsufficientFunds{})

		got, err := reg.Get("Bob")
		reqrd.Nil(err)
		as.True(got.Balance.Equal(decimal.NewFromInt(60)))
	})

	t.Run("failed save rolls the balance back", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		store := mocks.NewMockStore(ctrl)
		log := zerolog.Nop()
		store.EXPECT().Load().Return(seed(decimal.NewFromInt(60)), nil)
		store.EXPECT().Save(gomock.Any()).Return(minibank.ErrPersistence)
		reg, err := minibank.NewRegistry(store, &log)
		reqrd.Nil(err)

		_, err = reg.Update("Bob", func(a *minibank.Account) error {
			a.Balance = a.Balance.Add(decimal.NewFromInt(100))
			return nil
		})
		as.ErrorIs(err, minibank.ErrPersistence)

		got, err := reg.Get("Bob")
		reqrd.Nil(err)
		as.True(got.Balance.Equal(decimal.NewFromInt(60)))
	})
}
