package db

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/group-planner/pkg/core/model"
)

func TestGroup_ToModel(t *testing.T) {
	record := Group{
		ID:                  "g1",
		Code:                "ABC123",
		Name:                "Band practice",
		PlanningStart:       "2024-01-01",
		PlanningEnd:         "2024-01-31",
		BufferBeforeWorkMin: 20,
		SlotSizeMin:         30,
		YellowThreshold:     0.75,
	}

	group, err := record.ToModel()
	require.NoError(t, err)

	assert.Equal(t, civil.Date{Year: 2024, Month: time.January, Day: 1}, group.PlanningStart)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.January, Day: 31}, group.PlanningEnd)
	assert.Equal(t, record, GroupFromModel(group))
}

func TestGroup_ToModelInvalidDate(t *testing.T) {
	_, err := Group{Code: "ABC123", PlanningStart: "01/01/2024", PlanningEnd: "2024-01-31"}.ToModel()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid planning start")
}

func TestAvailabilityBlock_ToModel(t *testing.T) {
	record := AvailabilityBlock{
		ID:       "b1",
		GroupID:  "g1",
		UserID:   "u1",
		Date:     "2024-02-29",
		StartMin: 600,
		EndMin:   1440,
		Kind:     "WORK",
		Source:   "OCR",
	}

	block, err := record.ToModel()
	require.NoError(t, err)

	assert.Equal(t, model.KindWork, block.Kind)
	assert.Equal(t, model.SourceOCR, block.Source)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.February, Day: 29}, block.Date)
	assert.Equal(t, record, BlockFromModel(block))
}

func TestBlockedWindow_DayOfWeek(t *testing.T) {
	everyDay := BlockedWindow{ID: "w1", StartMin: 0, EndMin: 60}
	assert.Nil(t, everyDay.ToModel().DayOfWeek)
	assert.Nil(t, BlockedWindowFromModel(everyDay.ToModel()).DayOfWeek)

	saturday := 6
	scoped := BlockedWindow{ID: "w2", DayOfWeek: &saturday, StartMin: 0, EndMin: 60}
	window := scoped.ToModel()
	require.NotNil(t, window.DayOfWeek)
	assert.Equal(t, time.Saturday, *window.DayOfWeek)
	assert.Equal(t, scoped, BlockedWindowFromModel(window))
}
