package querycache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type row struct {
	ID     string
	Status string
}

func rows() []row {
	return []row{{ID: "q1", Status: "draft"}, {ID: "q2", Status: "paid"}, {ID: "q3", Status: "shipped"}}
}

func byID(id string) func(row) bool {
	return func(r row) bool { return r.ID == id }
}

func TestReconcile(t *testing.T) {
	committed := rows()
	got := Reconcile(committed, RemoveWhere(byID("q2")))
	assert.Equal(t, []row{{ID: "q1", Status: "draft"}, {ID: "q3", Status: "shipped"}}, got)
	assert.Equal(t, rows(), committed, "committed rows must not be modified")

	assert.Equal(t, committed, Reconcile[row](committed, nil))
}

func TestCollection_GetFetchesOnce(t *testing.T) {
	calls := 0
	c := New(func(context.Context) ([]row, error) {
		calls++
		return rows(), nil
	})

	got, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows(), got)
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	c.Invalidate()
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCollection_FailedDeleteRestoresSnapshot(t *testing.T) {
	c := New[row](nil)
	c.Set(rows())
	before := c.Snapshot()
	boom := errors.New("remote failed")

	err := c.Mutate(context.Background(), RemoveWhere(byID("q1")), func(context.Context) error {
		assert.Len(t, c.Snapshot(), 2, "patch is visible while the remote call runs")
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, c.Snapshot())
	assert.True(t, c.Stale())
}

func TestCollection_SuccessfulUpdateConfirmedByRefetch(t *testing.T) {
	server := rows()
	c := New(func(context.Context) ([]row, error) { return append([]row(nil), server...), nil })
	_, err := c.Get(context.Background())
	require.NoError(t, err)

	patch := UpdateWhere(byID("q1"), func(r row) row { r.Status = "sent_to_vendor"; return r })
	err = c.Mutate(context.Background(), patch, func(context.Context) error {
		server[0].Status = "sent_to_vendor"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "sent_to_vendor", c.Snapshot()[0].Status)
	assert.True(t, c.Stale())

	got, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, server, got)
	assert.False(t, c.Stale())
}

func TestCollection_MutationCancelsInFlightRefetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c := New(func(context.Context) ([]row, error) {
		close(started)
		<-release
		return rows(), nil
	})
	c.Set([]row{{ID: "q1", Status: "draft"}})

	done := make(chan error, 1)
	go func() { done <- c.Refetch(context.Background()) }()
	<-started

	require.NoError(t, c.Mutate(context.Background(), RemoveWhere(byID("q1")), func(context.Context) error { return nil }))
	close(release)

	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Empty(t, c.Snapshot(), "late refetch must not overwrite the mutation")
}

func TestCollection_RefetchError(t *testing.T) {
	boom := errors.New("offline")
	c := New(func(context.Context) ([]row, error) { return nil, boom })
	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, c.Stale())
}
