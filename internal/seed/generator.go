package seed

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/okian/mindlab/internal/domain/model"
)

// trainingShare is the percentage of generated entries with no score.
const trainingShare = 20

// Score range for competitive rounds.
const (
	minRoundScore = 62
	maxRoundScore = 84
)

var venues = []string{
	"Circolo Golf Villa d'Este",
	"Golf Club Milano",
	"Royal Park I Roveri",
	"Golf Nazionale",
	"Campo pratica",
}

var notes = []string{
	"",
	"",
	"solid pre-shot routine",
	"rushed on the back nine",
	"good tempo, tense on the greens",
	"wind, stayed patient",
}

// randInt returns a uniform value in [lo, hi].
func randInt(lo, hi int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	if err != nil {
		return lo
	}
	return lo + int(n.Int64())
}

func pick(values []string) string {
	return values[randInt(0, len(values)-1)]
}

// generateSubmissions creates count entries dated within spanDays before now,
// each with a fresh submission id.
func generateSubmissions(count, spanDays int, now time.Time) []Submission {
	out := make([]Submission, count)
	for i := range out {
		out[i] = generateSubmission(spanDays, now)
	}
	return out
}

func generateSubmission(spanDays int, now time.Time) Submission {
	back := time.Duration(randInt(0, spanDays*24*60)) * time.Minute
	score := randInt(minRoundScore, maxRoundScore)
	if randInt(1, 100) <= trainingShare {
		score = 0
	}
	return Submission{
		Date:         now.Add(-back).Format(time.RFC3339),
		Venue:        pick(venues),
		Score:        score,
		Acceptance:   randInt(model.MinRating, model.MaxRating),
		Routine:      randInt(model.MinRating, model.MaxRating),
		Decision:     randInt(model.MinRating, model.MaxRating),
		Focus:        randInt(model.MinRating, model.MaxRating),
		Energy:       randInt(model.MinRating, model.MaxRating),
		Tension:      randInt(model.MinRating, model.MaxRating),
		Notes:        pick(notes),
		SubmissionID: uuid.New().String(),
	}
}
