package club

import (
	"slices"
	"strings"

	"github.com/etnz/club/date"
)

// BootstrapShareValue is the share value used while no share is outstanding.
var BootstrapShareValue = M(100)

// PriorShareValue returns the share value at which a new deposit or
// withdrawal is converted into shares: the current share value, or
// BootstrapShareValue when it is not positive.
func PriorShareValue(shareValue Money) Money {
	if !shareValue.IsPositive() {
		return BootstrapShareValue
	}
	return shareValue
}

// ApplyMembership returns the members updated by a newly appended deposit or
// withdrawal. Shares are bought or redeemed at priorShareValue, the share
// value in effect before tx. A withdrawal that leaves the member under
// ShareEpsilon stamps today as exit date.
//
// The input slice is not modified. The returned bool is false when tx is not
// a cash flow or when its member is unknown, the members are then returned
// unchanged.
func ApplyMembership(members []Member, tx Transaction, priorShareValue Money, today date.Date) ([]Member, bool) {
	members = slices.Clone(members)
	if !tx.Type.IsCashFlow() {
		return members, false
	}
	i := FindMember(members, tx.MemberID)
	if i < 0 {
		return members, false
	}
	price := PriorShareValue(priorShareValue)
	shares := tx.Amount.DivPrice(price)
	switch tx.Type {
	case Deposit:
		members[i] = members[i].WithDeposit(tx.Amount, shares)
	case Withdrawal:
		members[i] = members[i].WithWithdrawal(shares, today)
	}
	return members, true
}

// MemberReport is a member's personal statement.
type MemberReport struct {
	Member     Member        `json:"member"`
	ShareValue Money         `json:"shareValue"`
	Equity     Money         `json:"equity"`     // shares * share value
	GainLoss   Money         `json:"gainLoss"`   // equity - invested capital
	Return     Percent       `json:"return"`     // gain relative to invested capital
	Ownership  Percent       `json:"ownership"`  // share of the club
	Flows      []Transaction `json:"flows"`      // the member's deposits and withdrawals
}

// NewMemberReport builds the statement of the member identified by id and
// email. The email match is case insensitive.
func NewMemberReport(d ClubData, id, email string) (MemberReport, error) {
	m, ok := d.Member(id)
	if !ok || !strings.EqualFold(strings.TrimSpace(m.Email), strings.TrimSpace(email)) {
		return MemberReport{}, ErrUnknownMember
	}
	equity := m.Equity(d.ShareValue)
	r := MemberReport{
		Member:     m,
		ShareValue: d.ShareValue,
		Equity:     equity,
		GainLoss:   equity.Sub(m.InvestedCapital),
		Flows:      []Transaction{},
	}
	r.Return = Pct(r.GainLoss.Ratio(m.InvestedCapital))
	if d.TotalShares.IsPositive() {
		r.Ownership = Pct(m.Shares.Float() / d.TotalShares.Float())
	}
	for _, tx := range d.Ledger().Transactions(ByMember(m.ID)) {
		r.Flows = append(r.Flows, tx)
	}
	return r, nil
}
