package legislature

import "legtracker/internal/domain"

const unknownSentimentColor = "#9E9E9E"

var sentimentColors = map[domain.Sentiment]string{
	domain.SentimentPositive: "#4CAF50",
	domain.SentimentNeutral:  "#FFC107",
	domain.SentimentNegative: "#F44336",
}

// SentimentColor maps a read to its card colour; anything unrecognised is gray.
func SentimentColor(s domain.Sentiment) string {
	if c, ok := sentimentColors[s]; ok {
		return c
	}
	return unknownSentimentColor
}
