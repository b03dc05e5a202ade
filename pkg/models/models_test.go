package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"zero total is defined as zero", 0, 0, 0},
		{"none done", 0, 4, 0},
		{"half done", 2, 4, 50},
		{"all done", 4, 4, 100},
		{"rounds up", 2, 3, 67},
		{"rounds down", 1, 3, 33},
		{"rounds half away from zero", 1, 8, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercentage(tt.completed, tt.total)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestTaskStatus_IsValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusNotStarted, StatusInProgress, StatusBlocked, StatusFinalCheck, StatusDone} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, TaskStatus("archived").IsValid())
	assert.False(t, TaskStatus("").IsValid())
}

func TestProjectStatus_IsValid(t *testing.T) {
	assert.True(t, ProjectPlanning.IsValid())
	assert.True(t, ProjectCompleted.IsValid())
	assert.False(t, ProjectStatus("cancelled").IsValid())
}

func TestRole_CanModify(t *testing.T) {
	assert.True(t, RoleOwner.CanModify())
	assert.True(t, RoleAdmin.CanModify())
	assert.True(t, RoleMember.CanModify())
	assert.False(t, RoleViewer.CanModify())

	assert.True(t, IsValidRole("viewer"))
	assert.False(t, IsValidRole("superuser"))
}

func TestRoom_Boundary(t *testing.T) {
	enc, err := EncodeBoundary([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})
	require.NoError(t, err)

	room := &Room{BoundaryCoordinates: enc}
	pts, err := room.Boundary()
	require.NoError(t, err)
	assert.Len(t, pts, 3)
	assert.True(t, room.Renderable())
}

func TestRoom_Renderable(t *testing.T) {
	twoPoints, err := EncodeBoundary([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	require.NoError(t, err)

	assert.False(t, (&Room{BoundaryCoordinates: twoPoints}).Renderable())
	assert.False(t, (&Room{BoundaryCoordinates: ""}).Renderable())
	assert.False(t, (&Room{BoundaryCoordinates: "not json"}).Renderable())
}
