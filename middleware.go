package minibank

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Middleware func(Service) Service

//
// Validation middleware
//

// validationMiddleware rejects malformed charge requests before they reach
// the ledger: amounts must be strictly positive. A rejected request causes
// no mutation and no persistence.
type validationMiddleware struct {
	next Service
}

var _ Service = (*validationMiddleware)(nil)

func NewValidationMiddleware() Middleware {
	return func(next Service) Service {
		return &validationMiddleware{next: next}
	}
}

func (v *validationMiddleware) Deposit(req ChargeReq) (*decimal.Decimal, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrValidation{Fields: map[string]string{"amount": "must be greater than zero"}}
	}
	return v.next.Deposit(req)
}

func (v *validationMiddleware) Withdraw(req ChargeReq) (*decimal.Decimal, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrValidation{Fields: map[string]string{"amount": "must be greater than zero"}}
	}
	return v.next.Withdraw(req)
}

func (v *validationMiddleware) Balance(name string) (*decimal.Decimal, error) {
	return v.next.Balance(name)
}

//
// Logging middleware
//

// loggingMiddleware emits one event per ledger operation. The controller
// hands it a session-scoped logger so every event carries the session ID
// and account of the active login.
type loggingMiddleware struct {
	next Service
	log  *zerolog.Logger
}

var _ Service = (*loggingMiddleware)(nil)

func NewLoggingMiddleware(log *zerolog.Logger) Middleware {
	return func(next Service) Service {
		return &loggingMiddleware{
			next: next,
			log:  log,
		}
	}
}

func (l *loggingMiddleware) Deposit(req ChargeReq) (*decimal.Decimal, error) {
	bal, err := l.next.Deposit(req)
	if err != nil {
		l.log.Err(err).
			Str("method", "deposit").
			Str("amount", req.Amount.String()).
			Msg("deposit rejected")
		return nil, err
	}
	l.log.Info().
		Str("method", "deposit").
		Str("amount", req.Amount.String()).
		Str("balance", bal.String()).
		Msg("deposit applied")
	return bal, nil
}

func (l *loggingMiddleware) Withdraw(req ChargeReq) (*decimal.Decimal, error) {
	bal, err := l.next.Withdraw(req)
	if err != nil {
		l.log.Err(err).
			Str("method", "withdraw").
			Str("amount", req.Amount.String()).
			Msg("withdrawal rejected")
		return nil, err
	}
	l.log.Info().
		Str("method", "withdraw").
		Str("amount", req.Amount.String()).
		Str("balance", bal.String()).
		Msg("withdrawal applied")
	return bal, nil
}

func (l *loggingMiddleware) Balance(name string) (*decimal.Decimal, error) {
	bal, err := l.next.Balance(name)
	if err != nil {
		l.log.Err(err).Str("method", "balance").Msg("balance check failed")
		return nil, err
	}
	l.log.Debug().
		Str("method", "balance").
		Str("balance", bal.String()).
		Msg("balance checked")
	return bal, nil
}
