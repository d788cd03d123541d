package club

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/club/date"
)

var (
	// ErrUnknownMember is returned when a member lookup fails.
	ErrUnknownMember = errors.New("unknown member")
	// ErrDuplicateMember is returned when adding a member whose id is taken.
	ErrDuplicateMember = errors.New("member already exists")
)

// MemberStatus is Active while the member holds shares.
type MemberStatus string

const (
	Active   MemberStatus = "Active"
	Inactive MemberStatus = "Inactive"
)

// Profile types used by the club. Any other tag is accepted.
const (
	ProfilePrudent   = "PHR_Prudent"
	ProfileDynamique = "FLG_Dynamique"
)

// ShareEpsilon is the share balance under which a withdrawing member is
// considered fully out of the club.
var ShareEpsilon = Q(0.01)

// Member is a club member and their share balance.
type Member struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone,omitempty"`
	JoinDate        date.Date    `json:"joinDate"`
	ExitDate        date.Date    `json:"exitDate"` // zero while the member is in the club
	InvestedCapital Money        `json:"investedCapital"`
	Shares          Quantity     `json:"shares"`
	Status          MemberStatus `json:"status"`
	ProfileType     string       `json:"profileType"`
}

// NewMember returns an Active member with no shares.
func NewMember(id, name, email, phone string, joined date.Date, profile string) Member {
	return Member{
		ID:          id,
		Name:        name,
		Email:       email,
		Phone:       phone,
		JoinDate:    joined,
		Status:      Active,
		ProfileType: profile,
	}
}

// Validate checks the member identity.
func (m Member) Validate() error {
	var errs []error
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, fmt.Errorf("%w: name", ErrMissingField))
	}
	if strings.TrimSpace(m.Email) == "" {
		errs = append(errs, fmt.Errorf("%w: email", ErrMissingField))
	}
	return errors.Join(errs...)
}

// WithDeposit returns a copy of m after buying shares with amount.
// A deposit always reactivates the member.
func (m Member) WithDeposit(amount Money, shares Quantity) Member {
	m.Shares = m.Shares.Add(shares)
	m.InvestedCapital = m.InvestedCapital.Add(amount)
	m.Status = Active
	m.ExitDate = date.Date{}
	return m
}

// WithWithdrawal returns a copy of m after redeeming shares on a given day.
// The balance never goes below zero and the member becomes Inactive when it
// falls under ShareEpsilon.
func (m Member) WithWithdrawal(shares Quantity, on date.Date) Member {
	m.Shares = m.Shares.Sub(shares).Max(Quantity{})
	if m.Shares.LessThan(ShareEpsilon) {
		m.Status = Inactive
		m.ExitDate = on
	} else {
		m.Status = Active
	}
	return m
}

// Equity returns the value of the member's shares.
func (m Member) Equity(shareValue Money) Money { return shareValue.Mul(m.Shares) }

// FindMember returns the index of the member with that id, or -1.
func FindMember(members []Member, id string) int {
	for i, m := range members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// TotalShares sums the shares of all members.
func TotalShares(members []Member) Quantity {
	var total Quantity
	for _, m := range members {
		total = total.Add(m.Shares)
	}
	return total
}
