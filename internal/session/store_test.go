package session_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripintel/tripintel/internal/domain"
	"github.com/tripintel/tripintel/internal/session"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := session.NewStore()

	sess := store.Create()
	require.NotEqual(t, uuid.Nil, sess.ID)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	err = sess.Do(func(it *domain.Itinerary) error {
		assert.Zero(t, it.Len(), "a new session starts with an empty itinerary")
		return nil
	})
	require.NoError(t, err)
}

func TestStore_CreateAssignsDistinctIDs(t *testing.T) {
	store := session.NewStore()

	a := store.Create()
	b := store.Create()

	assert.NotEqual(t, a.ID, b.ID)
}

func TestStore_GetUnknown(t *testing.T) {
	store := session.NewStore()

	_, err := store.Get(uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Discard(t *testing.T) {
	store := session.NewStore()
	sess := store.Create()

	require.NoError(t, store.Discard(sess.ID))

	_, err := store.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Discard(sess.ID), domain.ErrNotFound)
}

func TestSession_DoPropagatesError(t *testing.T) {
	sess := session.NewStore().Create()
	sentinel := errors.New("boom")

	err := sess.Do(func(*domain.Itinerary) error { return sentinel })

	assert.ErrorIs(t, err, sentinel)
}
