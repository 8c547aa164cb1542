package repair

import (
	"testing"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/announcement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T) *Request {
	t.Helper()
	r, err := NewRequest("apt-1", "block-1", "Țeavă spartă", "Baie", announcement.PriorityHigh, "tenant-1")
	require.NoError(t, err)
	return r
}

func TestRepairWorkflow(t *testing.T) {
	r := newTestRequest(t)
	assert.Equal(t, StatusPending, r.Status)

	require.NoError(t, r.TransitionTo(StatusInProgress))
	require.NoError(t, r.TransitionTo(StatusCompleted))

	err := r.TransitionTo(StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRepairTransitions(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusInProgress}:   true,
		{StatusPending, StatusRejected}:     true,
		{StatusInProgress, StatusCompleted}: true,
		{StatusInProgress, StatusRejected}:  true,
	}
	all := []Status{StatusPending, StatusInProgress, StatusCompleted, StatusRejected}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestRepairEditOnlyWhilePending(t *testing.T) {
	r := newTestRequest(t)
	require.NoError(t, r.Edit("Țeavă spartă la chiuvetă", "Bucătărie", ""))
	assert.Equal(t, announcement.PriorityMedium, r.Priority)

	require.NoError(t, r.TransitionTo(StatusRejected))
	assert.ErrorIs(t, r.Edit("x", "y", announcement.PriorityLow), ErrNotEditable)
}

func TestNewRequestValidation(t *testing.T) {
	_, err := NewRequest("apt-1", "b", " ", "Baie", "", "t")
	assert.ErrorIs(t, err, ErrEmptyDescription)

	_, err = NewRequest("apt-1", "b", "x", "", "", "t")
	assert.ErrorIs(t, err, ErrEmptyLocation)

	_, err = NewRequest("apt-1", "b", "x", "y", announcement.Priority("URGENT"), "t")
	assert.ErrorIs(t, err, announcement.ErrInvalidPriority)
}
