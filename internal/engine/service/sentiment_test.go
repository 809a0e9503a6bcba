package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateSentiment(t *testing.T) {
	assert.Equal(t, 0.0, EstimateSentiment(""))
	assert.Equal(t, 0.0, EstimateSentiment("the quarterly report is out"))

	assert.Equal(t, 1.0, EstimateSentiment("record growth and strong profit"))
	assert.Equal(t, -1.0, EstimateSentiment("bankruptcy after heavy loss"))

	// Mixed polarity averages out.
	assert.InDelta(t, 0.0, EstimateSentiment("strong growth but heavy loss and decline"), 0.34)
}

func TestEstimateSentimentIgnoresPunctuation(t *testing.T) {
	assert.Equal(t, 1.0, EstimateSentiment("Growth! Profit, success."))
}
