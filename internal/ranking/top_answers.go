package ranking

import (
	"sort"

	"github.com/sightstack/stackstream/internal/models"
)

const MAX_TOP_ANSWERS = 3

const HIGH_REP_THRESHOLD = 1000

// SelectTopAnswers picks up to three answers for the top_answers family:
//  1. the first accepted answer in input order, if any
//  2. the highest-scoring answers whose owner reputation exceeds 1000
//  3. the highest-scoring remaining answers regardless of reputation
//
// Score ties keep their original input order, so the selection is a pure
// deterministic function of the input. Already-selected answers are excluded
// from the later pools by answer id.
func SelectTopAnswers(answers []models.Answer) []models.Answer {
	if len(answers) == 0 {
		return nil
	}

	top := make([]models.Answer, 0, MAX_TOP_ANSWERS)
	selected := make(map[int64]bool, MAX_TOP_ANSWERS)

	for _, a := range answers {
		if a.IsAccepted {
			top = append(top, a)
			selected[a.AnswerID] = true
			break
		}
	}

	highRep := make([]models.Answer, 0, len(answers))
	for _, a := range answers {
		if a.OwnerReputation > HIGH_REP_THRESHOLD && !selected[a.AnswerID] {
			highRep = append(highRep, a)
		}
	}
	sort.SliceStable(highRep, func(i, j int) bool {
		return highRep[i].Score > highRep[j].Score
	})
	for _, a := range highRep {
		if len(top) >= MAX_TOP_ANSWERS {
			break
		}
		top = append(top, a)
		selected[a.AnswerID] = true
	}

	if len(top) < MAX_TOP_ANSWERS {
		remaining := make([]models.Answer, 0, len(answers))
		for _, a := range answers {
			if !selected[a.AnswerID] {
				remaining = append(remaining, a)
			}
		}
		sort.SliceStable(remaining, func(i, j int) bool {
			return remaining[i].Score > remaining[j].Score
		})
		for _, a := range remaining {
			if len(top) >= MAX_TOP_ANSWERS {
				break
			}
			top = append(top, a)
			selected[a.AnswerID] = true
		}
	}

	return top
}
