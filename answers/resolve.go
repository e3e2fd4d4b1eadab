package answers

import "strings"

// NoAnswerConfidence marks an alias for which no usable answer was found.
const NoAnswerConfidence float32 = -1

type Answer struct {
	Text       string  `json:"text"`
	Confidence float32 `json:"confidence"`
}

// Resolve maps every aliased query in blocks to its best answer: the
// ANSWER-linked query result with the highest confidence and non blank text.
// The first candidate wins on equal confidence. Aliases without a usable
// candidate map to an empty text with NoAnswerConfidence.
func Resolve(blocks []Block) map[string]Answer {
	index := make(map[string]Block, len(blocks))
	for _, b := range blocks {
		index[b.BlockID()] = b
	}

	results := make(map[string]Answer)
	for _, b := range blocks {
		q, ok := b.(QueryBlock)
		if !ok || q.Alias == "" {
			continue
		}
		results[q.Alias] = best(q.AnswerIDs(), index)
	}
	return results
}

func best(ids []string, index map[string]Block) Answer {
	answer := Answer{Confidence: NoAnswerConfidence}
	for _, id := range ids {
		candidate, ok := index[id].(QueryResultBlock)
		if !ok {
			continue
		}
		text := strings.TrimSpace(candidate.Text)
		if text == "" {
			continue
		}
		if candidate.Confidence > answer.Confidence {
			answer = Answer{Text: text, Confidence: candidate.Confidence}
		}
	}
	return answer
}
