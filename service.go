package minibank

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination mocks/service.go -package mocks github.com/arhyth/minibank Service

// ChargeReq is one deposit or withdrawal against a named account.
type ChargeReq struct {
	Name   string
	Amount decimal.Decimal
}

// Service is the ledger surface offered to an authenticated session.
// Deposit and Withdraw persist the full snapshot before returning the new
// balance; Balance is a pure read and persists nothing.
type Service interface {
	Deposit(req ChargeReq) (*decimal.Decimal, error)
	Withdraw(req ChargeReq) (*decimal.Decimal, error)
	Balance(name string) (*decimal.Decimal, error)
}

func NewService(reg *Registry, log *zerolog.Logger) *serviceImpl {
	return &serviceImpl{
		reg: reg,
		log: log,
	}
}

type serviceImpl struct {
	reg *Registry
	log *zerolog.Logger
}

var _ Service = (*serviceImpl)(nil)

func (s *serviceImpl) Deposit(req ChargeReq) (*decimal.Decimal, error) {
	acct, err := s.reg.Update(req.Name, func(a *Account) error {
		a.Balance = a.Balance.Add(req.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &acct.Balance, nil
}

// Withdraw debits the account. An amount above the current balance rejects
// the whole withdrawal; the balance never goes negative.
func (s *serviceImpl) Withdraw(req ChargeReq) (*decimal.Decimal, error) {
	acct, err := s.reg.Update(req.Name, func(a *Account) error {
		if req.Amount.GreaterThan(a.Balance) {
			return ErrInsufficientFunds{
				Balance:   a.Balance,
				Requested: req.Amount,
			}
		}
		a.Balance = a.Balance.Sub(req.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &acct.Balance, nil
}

func (s *serviceImpl) Balance(name string) (*decimal.Decimal, error) {
	acct, err := s.reg.Get(name)
	if err != nil {
		return nil, err
	}
	return &acct.Balance, nil
}
