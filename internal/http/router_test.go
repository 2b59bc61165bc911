package http

import (
	"testing"

	"appointment-manager/backend/internal/domain/identity"
	"appointment-manager/backend/internal/domain/teacherstatus"

	"github.com/stretchr/testify/assert"
)

func TestMergeTeacherStatuses(t *testing.T) {
	teachers := []identity.User{
		{UID: "t1", Email: "t1@school.test"},
		{UID: "t2", Email: "t2@school.test"},
	}
	statuses := []teacherstatus.Status{
		{TeacherID: "t2", Available: false, OnLeave: true},
	}

	out := mergeTeacherStatuses(teachers, statuses)
	assert.Len(t, out, 2)

	// No stored status falls back to the default.
	assert.True(t, out[0].Available)
	assert.False(t, out[0].OnLeave)

	assert.False(t, out[1].Available)
	assert.True(t, out[1].OnLeave)
}

func TestMergeTeacherStatusesEmpty(t *testing.T) {
	out := mergeTeacherStatuses(nil, nil)
	assert.Empty(t, out)
}
