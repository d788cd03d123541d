package club

import (
	"github.com/etnz/club/date"
)

// Demo returns the snapshot seeded when no persisted club exists: three
// members, the transactions that funded them and a generated history.
func Demo(today date.Date, rnd func() float64) Snapshot {
	d := date.MustParse
	return Snapshot{
		Members: []Member{
			{ID: "m1", Name: "Alice Johnson", Email: "alice@email.com", Phone: "555-0101", JoinDate: d("2019-07-20"), InvestedCapital: M(10000), Shares: Q(100), Status: Active, ProfileType: ProfileDynamique},
			{ID: "m2", Name: "Bob Williams", Email: "bob@email.com", Phone: "555-0102", JoinDate: d("2019-07-20"), InvestedCapital: M(15000), Shares: Q(150), Status: Active, ProfileType: ProfilePrudent},
			{ID: "m3", Name: "Charlie Brown", Email: "charlie@email.com", Phone: "555-0103", JoinDate: d("2022-06-01"), ExitDate: d("2023-12-31"), InvestedCapital: M(5000), Shares: Q(0), Status: Inactive, ProfileType: ProfileDynamique},
		},
		Transactions: []Transaction{
			{ID: "t1", Date: d("2019-07-20"), Type: Deposit, Portfolio: Phronesis, MemberID: "m1", Amount: M(10000)},
			{ID: "t2", Date: d("2019-07-20"), Type: Deposit, Portfolio: Phronesis, MemberID: "m2", Amount: M(15000)},
			{ID: "t-charlie-in", Date: d("2022-06-01"), Type: Deposit, Portfolio: FlagShip, MemberID: "m3", Amount: M(5000)},
			{ID: "t3", Date: d("2022-08-01"), Type: Buy, Portfolio: Phronesis, Asset: "AAPL", Quantity: Q(30), Price: M(150), Amount: M(4500)},
			{ID: "t4", Date: d("2023-03-10"), Type: Buy, Portfolio: Phronesis, Asset: "GOOGL", Quantity: Q(10), Price: M(100), Amount: M(1000)},
			{ID: "t5", Date: d("2023-05-15"), Type: Buy, Portfolio: FlagShip, Asset: "XAU/USD", Quantity: Q(2), Price: M(1900), Amount: M(3800)},
			{ID: "t6", Date: d("2023-06-01"), Type: Sell, Portfolio: FlagShip, Asset: "XAU/USD", Quantity: Q(1), Price: M(1950), Amount: M(1950)},
			{ID: "t-charlie-out", Date: d("2023-12-31"), Type: Withdrawal, Portfolio: FlagShip, MemberID: "m3", Amount: M(5500)},
		},
		PerformanceHistory: GenerateHistory(today, rnd),
	}
}
