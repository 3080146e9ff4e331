package exam

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result summarizes a checked attempt
type Result struct {
	Total   int
	Correct int
	Score   decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Check grades the selections against the questions.
// Questions absent from selections count as wrong. Score is a percentage rounded to 2 places.
func Check(questions []*Question, selections map[uuid.UUID][]uuid.UUID) Result {
	res := Result{Total: len(questions), Score: decimal.Zero}
	for _, q := range questions {
		if q.IsAnsweredCorrectly(selections[q.ID]) {
			res.Correct++
		}
	}
	if res.Total > 0 {
		res.Score = decimal.NewFromInt(int64(res.Correct)).
			Mul(hundred).
			DivRound(decimal.NewFromInt(int64(res.Total)), 2)
	}
	return res
}
