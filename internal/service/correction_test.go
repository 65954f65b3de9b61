package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/paddock-picks/internal/models"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	svc := newTestService(nil)
	report, err := svc.Analyze(context.Background(), threeRacePaste)
	require.NoError(t, err)
	return svc.NewSession(report)
}

func TestNewSessionWorklist(t *testing.T) {
	session := newTestSession(t)

	assert.Len(t, session.Picks(), 3)
	worklist := session.Worklist()
	require.Len(t, worklist, 1)
	assert.Equal(t, "伏兵", worklist[0].HorseName)
	assert.True(t, worklist[0].PlaceLow.IsEstimated())
}

func TestSessionCorrect(t *testing.T) {
	session := newTestSession(t)

	updated, err := session.Correct(models.NewPickKey("阪神", 3, "伏兵"), "伏兵 単 9.0 複 2.0-2.6\n別馬 複 5.0-7.0")

	require.NoError(t, err)
	assert.Equal(t, models.RankB, updated.Rank)
	assert.True(t, updated.PlaceLow.IsMeasured())
	assert.Equal(t, "2.0–2.6", updated.PlaceRangeText)
	assert.Equal(t, "9.0", updated.WinOdds.StringFixed(1))

	assert.Empty(t, session.Worklist())
	picks := session.Picks()
	assert.Equal(t, models.RankB, picks[2].Rank)
	assert.Equal(t, []string{"中山7"}, labels(session.Recommended()))
}

func TestSessionCorrectUnknownKey(t *testing.T) {
	session := newTestSession(t)

	tests := []struct {
		name string
		key  models.PickKey
	}{
		{name: "unknown horse", key: models.NewPickKey("阪神", 3, "別馬")},
		{name: "wrong race", key: models.NewPickKey("阪神", 4, "伏兵")},
		{name: "vetoed race", key: models.NewPickKey("東京", 11, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := session.Correct(tt.key, "伏兵 2.0-2.6")
			assert.Nil(t, updated)
			assert.ErrorIs(t, err, models.ErrPickNotFound)
		})
	}
}

func TestSessionCorrectRangeNotFound(t *testing.T) {
	session := newTestSession(t)
	before := session.Picks()

	updated, err := session.Correct(models.NewPickKey("阪神", 3, "伏兵"), "伏兵 単 9.0")

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, models.ErrRangeNotFound)
	assert.Equal(t, before, session.Picks())
	assert.Len(t, session.Worklist(), 1)
}

func TestSessionCorrectMeasuredPick(t *testing.T) {
	session := newTestSession(t)

	updated, err := session.Correct(models.NewPickKey("中山", 7, "対抗"), "対抗 複勝 3.1-4.0")

	require.NoError(t, err)
	assert.Equal(t, models.RankS, updated.Rank)
	assert.Equal(t, models.RankS, session.Picks()[0].Rank)
	assert.Len(t, session.Worklist(), 1)
}

func TestSessionPicksAreCopies(t *testing.T) {
	session := newTestSession(t)

	picks := session.Picks()
	picks[0].HorseName = "changed"
	picks[0].Tags[0] = "changed"

	fresh := session.Picks()
	assert.Equal(t, "対抗", fresh[0].HorseName)
	assert.Equal(t, "6番人気", fresh[0].Tags[0])
}
