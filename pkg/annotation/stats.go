package annotation

import "math"

// Stats summarizes the content of a tree for reporting.
type Stats struct {
	Pages      int `json:"pages"`
	Blocks     int `json:"blocks"`
	Paragraphs int `json:"paragraphs"`
	Words      int `json:"words"`
	Symbols    int `json:"symbols"`

	// TextLength is the length of the reconstructed document text.
	TextLength int `json:"text_length"`

	// Confidence statistics over page and block scores.
	AvgConfidence    float64 `json:"avg_confidence"`
	MinConfidence    float64 `json:"min_confidence"`
	MaxConfidence    float64 `json:"max_confidence"`
	ConfidenceStdDev float64 `json:"confidence_std"`
}

// Collect walks the tree and computes summary statistics.
// Confidence statistics are computed over page and block confidences;
// zero-valued scores count as real observations, matching the
// absent-confidence-is-zero convention.
func Collect(t *Tree) Stats {
	s := Stats{Pages: len(t.Pages)}

	var confidences []float64
	for _, p := range t.Pages {
		confidences = append(confidences, p.Confidence)
		s.Blocks += len(p.Blocks)
		for _, b := range p.Blocks {
			confidences = append(confidences, b.Confidence)
			s.Paragraphs += len(b.Paragraphs)
			for _, para := range b.Paragraphs {
				s.Words += len(para.Words)
				for _, w := range para.Words {
					s.Symbols += len(w.Symbols)
				}
			}
		}
	}

	s.TextLength = len(PlainText(t))

	if len(confidences) > 0 {
		s.MinConfidence = confidences[0]
		s.MaxConfidence = confidences[0]
		var sum float64
		for _, c := range confidences {
			sum += c
			s.MinConfidence = math.Min(s.MinConfidence, c)
			s.MaxConfidence = math.Max(s.MaxConfidence, c)
		}
		s.AvgConfidence = sum / float64(len(confidences))
		s.ConfidenceStdDev = stddev(confidences, s.AvgConfidence)
	}

	return s
}

func stddev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
