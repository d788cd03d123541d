// Package club implements the accounting and analytics engine of an
// investment club that pools its members' capital into two sub-portfolios.
//
// The engine is organized in layers, leaves first:
//   - Ledger: an append-only, insertion-ordered list of transactions
//     (deposits, withdrawals, buys, sells and dividends) and the club members.
//   - Journal: the transactions of one sub-portfolio converted into atomic
//     cash and lot events, replayed into cash and per-asset lots.
//   - Valuation: lots priced into holdings and aggregated into per
//     sub-portfolio and club-wide totals, including the share value.
//   - Membership: deposits and withdrawals converted into member shares at the
//     share value in effect before the transaction.
//   - Analytics: returns, volatility, Sharpe ratio and drawdowns over the
//     monthly NAV history, plus concentration, stress tests and allocation
//     over the live holdings.
//
// Every computation is a pure function of its inputs. The Club type owns the
// read-modify-persist cycle against a Store.
package club
