package engine

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/scoinhq/scoin-backend/internal/repos/symbols"
	"github.com/scoinhq/scoin-backend/internal/repos/users"
	"github.com/scoinhq/scoin-backend/internal/services/draw"
)

// SpinResult is the outcome of one settled spin. Net is Win - bet and always
// equals the amount of the ledger row the spin wrote.
type SpinResult struct {
	Icons      [3]string
	Multiplier float64
	Win        int64
	Net        int64
}

// Spin wagers bet coins on three independent weighted draws. All three icons
// matching pays the symbol's multiplier times the bet; anything else pays
// zero. The debit and the win settle as a single net mutation, so a spin is
// all-or-nothing: either the full result commits with its ledger row or
// nothing changes.
func (e *Engine) Spin(ctx context.Context, userID, bet int64) (*SpinResult, error) {
	if bet < e.minBet || bet > e.maxBet {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBet, bet, e.minBet, e.maxBet)
	}

	var result *SpinResult

	err := e.withRetry(ctx, func(tx *sql.Tx) error {
		result = nil

		balance, err := e.users.LockAndGetBalance(tx, userID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		if balance < bet {
			return users.ErrInsufficientFunds
		}

		table, err := e.symbols.ListForSpin(tx)
		if err != nil {
			return fmt.Errorf("load symbols: %w", err)
		}

		if len(table) == 0 {
			return symbols.ErrNoSymbols
		}

		weights := make([]int64, len(table))
		for i, s := range table {
			weights[i] = s.Weight
		}

		var drawn [3]symbols.Symbol
		for i := range drawn {
			idx, err := draw.Pick(e.src, weights)
			if err != nil {
				return fmt.Errorf("draw: %w", err)
			}

			drawn[i] = table[idx]
		}

		var multiplier float64
		if drawn[0].Icon == drawn[1].Icon && drawn[1].Icon == drawn[2].Icon {
			multiplier = drawn[0].Multiplier
		}

		win := roundWin(multiplier, bet)
		net := win - bet

		err = e.users.ApplyDelta(tx, userID, net)
		if err != nil {
			return fmt.Errorf("settle: %w", err)
		}

		icons := [3]string{drawn[0].Icon, drawn[1].Icon, drawn[2].Icon}
		reason := "Casino: " + strings.Join(icons[:], " | ")

		err = e.ledger.Append(tx, userID, net, reason)
		if err != nil {
			return fmt.Errorf("ledger: %w", err)
		}

		result = &SpinResult{Icons: icons, Multiplier: multiplier, Win: win, Net: net}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// roundWin converts a fractional multiplier times the bet into whole coins.
// Rounding rule: nearest coin, ties away from zero. Applied uniformly to
// every payout.
func roundWin(multiplier float64, bet int64) int64 {
	return int64(math.Round(multiplier * float64(bet)))
}
