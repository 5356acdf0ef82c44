package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

func TestAdvancesWeek(t *testing.T) {
	// A first-time present mark counts.
	assert.True(t, advancesWeek("", false, models.AttendancePresent))

	// Correcting an absent mark to present counts once.
	assert.True(t, advancesWeek(models.AttendanceAbsent, true, models.AttendancePresent))

	// Re-submitting the same session's marks must not count again.
	assert.False(t, advancesWeek(models.AttendancePresent, true, models.AttendancePresent))

	// Non-present marks never advance, new or not.
	assert.False(t, advancesWeek("", false, models.AttendanceAbsent))
	assert.False(t, advancesWeek(models.AttendancePresent, true, models.AttendanceMakeupNeeded))
}
