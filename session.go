package minibank

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Command is a top-level menu selection.
type Command int

const (
	CmdRegister Command = iota + 1
	CmdLogin
	CmdExit
)

// SessionCommand is a selection from the authenticated banking menu.
type SessionCommand int

const (
	CmdDeposit SessionCommand = iota + 1
	CmdWithdraw
	CmdBalance
	CmdLogout
)

const adultAge = 18

// Prompter is the interactive collaborator of the session controller. All
// raw reading, masking, and retry-on-garbage happens behind it; the
// controller only sees validated values or ErrValidation. ReadNewPIN must
// return a format-valid, confirmation-matched plaintext PIN.
//
// An error from any method other than ReadAmount means the interactive
// surface itself failed and the session cannot continue.
type Prompter interface {
	SecretSource

	MainMenu() (Command, error)
	SessionMenu() (SessionCommand, error)
	ReadName() (string, error)
	ReadGender() (Gender, error)
	ReadAge() (int, error)
	ConfirmVIP() (bool, error)
	ReadNewPIN() (string, error)
	ReadAmount(verb string) (decimal.Decimal, error)
	Say(format string, args ...interface{})
}

// SessionController orchestrates the registration, login, and banking
// loops. It owns the single active session: at most one account holder is
// authenticated at a time.
type SessionController struct {
	reg    *Registry
	auth   *AuthService
	hasher CredentialHasher
	prompt Prompter
	node   *snowflake.Node
	log    *zerolog.Logger
}

func NewSessionController(reg *Registry, auth *AuthService, hasher CredentialHasher, prompt Prompter, log *zerolog.Logger) (*SessionController, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &SessionController{
		reg:    reg,
		auth:   auth,
		hasher: hasher,
		prompt: prompt,
		node:   node,
		log:    log,
	}, nil
}

// Run drives the top-level menu until Exit. Domain failures are reported to
// the user and return to the menu; only interactive-surface or persistence
// failures end the loop with an error.
func (c *SessionController) Run() error {
	for {
		cmd, err := c.prompt.MainMenu()
		if err != nil {
			return err
		}
		switch cmd {
		case CmdRegister:
			err = c.register()
		case CmdLogin:
			err = c.login()
		case CmdExit:
			c.prompt.Say("Thanks for using minibank. Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// register collects identity details, then a confirmed PIN, then creates
// the account. Order matters and is deliberate: the duplicate check comes
// before any PIN prompt, and age is checked before VIP eligibility, with
// the VIP question asked only for minors.
func (c *SessionController) register() error {
	name, err := c.prompt.ReadName()
	if err != nil {
		return err
	}
	name = NormalizeName(name)
	if name == "" {
		c.prompt.Say("Name cannot be empty.")
		return nil
	}
	if c.reg.Exists(name) {
		c.prompt.Say("An account with this name already exists.")
		return nil
	}

	gender, err := c.prompt.ReadGender()
	if err != nil {
		return err
	}
	age, err := c.prompt.ReadAge()
	if err != nil {
		return err
	}
	vip := false
	if age < adultAge {
		if vip, err = c.prompt.ConfirmVIP(); err != nil {
			return err
		}
		if !vip {
			c.prompt.Say("You must be at least %d or a VIP to register.", adultAge)
			return nil
		}
	}

	pin, err := c.prompt.ReadNewPIN()
	if err != nil {
		return err
	}
	if _, err = c.reg.Register(name, c.hasher.Digest(pin), age, vip); err != nil {
		var dup ErrDuplicateAccount
		if errors.As(err, &dup) {
			c.prompt.Say("An account with this name already exists.")
			return nil
		}
		return err
	}

	if h := gender.Honorific(); h != "" {
		c.prompt.Say("Registration complete. Welcome %s %s!", h, name)
	} else {
		c.prompt.Say("Registration complete. Welcome %s!", name)
	}
	return nil
}

// login authenticates a claimed name and, on success, enters the banking
// loop with a session-scoped ledger. NoSuchAccount and Locked fall back to
// the top-level menu without entering the loop.
func (c *SessionController) login() error {
	name, err := c.prompt.ReadName()
	if err != nil {
		return err
	}
	name = NormalizeName(name)

	outcome, err := c.auth.Login(name, c.prompt)
	if err != nil {
		return err
	}
	switch outcome {
	case NoSuchAccount:
		c.prompt.Say("No account with this name.")
		return nil
	case Locked:
		c.prompt.Say("Too many failed attempts. Account locked.")
		return nil
	}
	c.prompt.Say("Welcome %s, login successful.", name)

	sid := c.node.Generate()
	slog := c.log.With().
		Str("session", sid.String()).
		Str("account", name).
		Logger()
	svc := NewLoggingMiddleware(&slog)(NewValidationMiddleware()(NewService(c.reg, &slog)))
	return c.operate(name, svc)
}

func (c *SessionController) operate(name string, svc Service) error {
	for {
		cmd, err := c.prompt.SessionMenu()
		if err != nil {
			return err
		}
		switch cmd {
		case CmdDeposit:
			err = c.charge(name, "deposit", svc.Deposit)
		case CmdWithdraw:
			err = c.charge(name, "withdrawal", svc.Withdraw)
		case CmdBalance:
			var bal *decimal.Decimal
			if bal, err = svc.Balance(name); err == nil {
				c.prompt.Say("Current Balance: %s", FormatAmount(*bal))
			}
		case CmdLogout:
			c.prompt.Say("Logged out.")
			return nil
		}
		if err != nil {
			if c.reported(err) {
				continue
			}
			return err
		}
	}
}

// charge runs one deposit or withdrawal round: read an amount, apply it,
// report the new balance. A non-numeric amount aborts the round.
func (c *SessionController) charge(name, verb string, apply func(ChargeReq) (*decimal.Decimal, error)) error {
	amt, err := c.prompt.ReadAmount(verb)
	if err != nil {
		var ev ErrValidation
		if errors.As(err, &ev) {
			c.prompt.Say("Invalid input.")
			return nil
		}
		return err
	}
	bal, err := apply(ChargeReq{Name: name, Amount: amt})
	if err != nil {
		return err
	}
	if verb == "deposit" {
		c.prompt.Say("Deposited: %s", FormatAmount(amt))
	} else {
		c.prompt.Say("Withdrawn: %s", FormatAmount(amt))
	}
	c.prompt.Say("New Balance: %s", FormatAmount(*bal))
	return nil
}

// reported tells the user about a recoverable ledger failure and reports
// whether it was one. Persistence and store corruption are not recoverable.
func (c *SessionController) reported(err error) bool {
	var (
		ev  ErrValidation
		eif ErrInsufficientFunds
		enf ErrNotFound
	)
	switch {
	case errors.As(err, &eif):
		c.prompt.Say("Insufficient funds.")
	case errors.As(err, &ev):
		for _, reason := range ev.Fields {
			c.prompt.Say("Amount %s.", reason)
		}
	case errors.As(err, &enf):
		c.prompt.Say("No account with this name.")
	default:
		return false
	}
	return true
}
