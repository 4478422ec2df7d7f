package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageSince_WholeHistory(t *testing.T) {
	history := map[string]int{
		"2018-03-10 11:00:36": 800,
		"2018-03-10 11:00:40": 90,
		"2018-03-10 11:00:44": 95,
		"2018-03-10 11:00:48": 1050,
	}
	assert.Equal(t, 508.75, AverageSince(history, ""))
}

func TestAverageSince_Cutoff(t *testing.T) {
	history := map[string]int{
		"2018-03-10 11:00:36": 800,
		"2018-03-10 11:00:40": 90,
		"2018-03-10 11:00:44": 95,
		"2018-03-10 11:00:48": 1050,
		"2018-03-10 11:00:52": 70,
	}
	assert.Equal(t, 326.25, AverageSince(history, "2018-03-10 11:00:37"))
	assert.Equal(t, 70.0, AverageSince(history, "2018-03-10 11:00:52"))
}

func TestAverageSince_Empty(t *testing.T) {
	assert.Equal(t, 0.0, AverageSince(map[string]int{}, ""))
	assert.Equal(t, 0.0, AverageSince(map[string]int{"2018-03-10 11:00:36": 90}, "2019-01-01 00:00:00"))
}
