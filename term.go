package minibank

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// TerminalPrompter talks to a human over stdin/stdout. PIN entry is masked
// through the terminal driver when stdin is a real tty and degrades to
// plain line reads when it is a pipe (scripted runs).
type TerminalPrompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	tty    bool
	minPIN int
}

var _ Prompter = (*TerminalPrompter)(nil)

func NewTerminalPrompter(minPIN int) *TerminalPrompter {
	if minPIN <= 0 {
		minPIN = DefaultMinPINLength
	}
	return &TerminalPrompter{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		fd:     int(os.Stdin.Fd()),
		tty:    isatty.IsTerminal(os.Stdin.Fd()),
		minPIN: minPIN,
	}
}

func (t *TerminalPrompter) readLine(label string) (string, error) {
	fmt.Fprint(t.out, label)
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *TerminalPrompter) readSecret(label string) (string, error) {
	if !t.tty {
		return t.readLine(label)
	}
	fmt.Fprint(t.out, label)
	pin, err := term.ReadPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pin)), nil
}

func (t *TerminalPrompter) MainMenu() (Command, error) {
	for {
		fmt.Fprint(t.out, "\n=== Welcome to minibank ===\n1. Register\n2. Login\n3. Exit\n")
		choice, err := t.readLine("Choose (1-3): ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < int(CmdRegister) || n > int(CmdExit) {
			fmt.Fprintln(t.out, "Invalid choice.")
			continue
		}
		return Command(n), nil
	}
}

func (t *TerminalPrompter) SessionMenu() (SessionCommand, error) {
	for {
		fmt.Fprint(t.out, "\n=== Banking Menu ===\n1. Deposit\n2. Withdraw\n3. Check Balance\n4. Logout\n")
		choice, err := t.readLine("Choose option (1-4): ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < int(CmdDeposit) || n > int(CmdLogout) {
			fmt.Fprintln(t.out, "Invalid option.")
			continue
		}
		return SessionCommand(n), nil
	}
}

func (t *TerminalPrompter) ReadName() (string, error) {
	return t.readLine("Enter your name: ")
}

func (t *TerminalPrompter) ReadGender() (Gender, error) {
	for {
		ans, err := t.readLine("Enter your gender (M/F/O for Other): ")
		if err != nil {
			return GenderUnspecified, err
		}
		g, err := ParseGender(ans)
		if err != nil {
			fmt.Fprintln(t.out, "Please enter M, F, or O.")
			continue
		}
		return g, nil
	}
}

func (t *TerminalPrompter) ReadAge() (int, error) {
	for {
		ans, err := t.readLine("Enter your age: ")
		if err != nil {
			return 0, err
		}
		age, err := ParseAge(ans)
		if err != nil {
			var ev ErrValidation
			if errors.As(err, &ev) {
				fmt.Fprintf(t.out, "Invalid age input: %s.\n", ev.Fields["age"])
				continue
			}
			return 0, err
		}
		return age, nil
	}
}

func (t *TerminalPrompter) ConfirmVIP() (bool, error) {
	ans, err := t.readLine("Are you a VIP? (yes/no): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(ans, "yes"), nil
}

// ReadNewPIN loops until a digits-only PIN of minimum length is entered
// twice in a row. The returned PIN is plaintext; the caller digests it.
func (t *TerminalPrompter) ReadNewPIN() (string, error) {
	for {
		pin, err := t.readSecret(fmt.Sprintf("\nSet your PIN (minimum %d digits): ", t.minPIN))
		if err != nil {
			return "", err
		}
		if err := ValidatePIN(pin, t.minPIN); err != nil {
			var ev ErrValidation
			if errors.As(err, &ev) {
				fmt.Fprintf(t.out, "PIN %s. Try again.\n", ev.Fields["pin"])
				continue
			}
			return "", err
		}
		confirm, err := t.readSecret("Confirm your PIN: ")
		if err != nil {
			return "", err
		}
		if pin != confirm {
			fmt.Fprintln(t.out, "PINs do not match. Try again.")
			continue
		}
		fmt.Fprintln(t.out, "PIN set successfully.")
		return pin, nil
	}
}

func (t *TerminalPrompter) ReadPIN() (string, error) {
	return t.readSecret("Enter your PIN: ")
}

func (t *TerminalPrompter) PINRejected(remaining int) {
	fmt.Fprintf(t.out, "Incorrect PIN (%d attempts left).\n", remaining)
}

func (t *TerminalPrompter) ReadAmount(verb string) (decimal.Decimal, error) {
	ans, err := t.readLine(fmt.Sprintf("Enter %s amount: ", verb))
	if err != nil {
		return decimal.Zero, err
	}
	return ParseAmount(ans)
}

func (t *TerminalPrompter) Say(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format+"\n", args...)
}
