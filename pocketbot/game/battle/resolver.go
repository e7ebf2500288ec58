// Package battle resolves card battles. Outcome computation is a pure
// function over two cards' stats; only decisive outcomes touch the win/loss
// counters.
package battle

import (
	"github.com/wonderpick/pocketbot/pocketbot/catalog"
	"github.com/wonderpick/pocketbot/pocketbot/config"
)

type Verdict int

const (
	Draw Verdict = iota
	ChallengerWins
	OpponentWins
)

// Outcome is the resolved result of one battle computation.
type Outcome struct {
	Verdict          Verdict
	ChallengerCard   catalog.Card
	OpponentCard     catalog.Card
	ChallengerDamage int
	OpponentDamage   int
}

// ResolveOutcome computes each side's damage as attack minus the opposing
// defense, floored at 1. Strictly greater damage wins; equal damage is a
// draw.
func ResolveOutcome(challenger, opponent catalog.Card) Outcome {
	challengerDamage := damage(challenger.Attack, opponent.Defense)
	opponentDamage := damage(opponent.Attack, challenger.Defense)

	verdict := Draw
	switch {
	case challengerDamage > opponentDamage:
		verdict = ChallengerWins
	case opponentDamage > challengerDamage:
		verdict = OpponentWins
	}

	return Outcome{
		Verdict:          verdict,
		ChallengerCard:   challenger,
		OpponentCard:     opponent,
		ChallengerDamage: challengerDamage,
		OpponentDamage:   opponentDamage,
	}
}

func damage(attack, defense int) int {
	d := attack - defense
	if d < config.MinimumDamage {
		return config.MinimumDamage
	}
	return d
}
