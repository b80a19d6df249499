package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBuckets(t *testing.T) {
	assert.Nil(t, ParseBuckets(""))
	assert.Nil(t, ParseBuckets("0.1,abc"))
	assert.Nil(t, ParseBuckets("1,0.5"))
	assert.Equal(t, []float64{0.05, 0.1, 0.5, 1, 2.5}, ParseBuckets("0.05, 0.1,0.5,1 ,2.5"))
}

func TestUnixMilliToTime(t *testing.T) {
	got := UnixMilliToTime(1_700_000_000_123)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, int64(1_700_000_000_123), got.UnixMilli())
}

func TestFormatUnixMilli(t *testing.T) {
	assert.Equal(t, "2023-11-14 22:13:20 UTC", FormatUnixMilli(1_700_000_000_000))
}
