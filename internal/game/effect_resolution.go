package game

// Resolve applies one card to a snapshot. The card sees a private copy,
// and wealth is re-clamped before the outcome is returned.
func Resolve(card *Card, s Status) Outcome {
	out := card.Effect.Apply(s.Clone())
	out.Status.Wealth = ClampWealth(out.Status.Wealth)
	return out
}

// Applied records one resolved card within a turn.
type Applied struct {
	Card    *Card
	Outcome Outcome
}

// SequenceResult is the outcome of resolving an ordered list of cards.
type SequenceResult struct {
	Status   Status
	Applied  []Applied // only the cards that actually resolved
	GameOver bool
	Reason   GameOverReason
}

// ResolveSequence threads one evolving snapshot through cards in order.
// Each card reads the previous card's output. Resolution stops at the
// first terminal outcome; later cards are not applied.
func ResolveSequence(cards []*Card, s Status) SequenceResult {
	res := SequenceResult{Status: s.Clone()}
	for _, c := range cards {
		out := Resolve(c, res.Status)
		res.Applied = append(res.Applied, Applied{Card: c, Outcome: out})
		res.Status = out.Status
		if out.GameOver {
			res.GameOver = true
			res.Reason = out.Reason
			break
		}
	}
	return res
}
