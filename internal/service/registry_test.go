package service

import (
	"context"
	"testing"

	"github.com/meltforce/coachdesk/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterAndFind covers the register/find round trip and the duplicate
// handle rejection.
func TestRegisterAndFind(t *testing.T) {
	store := newFakeStore()
	reg := NewRegistry(store, testLogger())
	ctx := context.Background()

	ana, err := reg.Register(ctx, "Ana", "Strength", "", "anag", "pin-1234")
	require.NoError(t, err)
	assert.NotZero(t, ana.ID)
	assert.NotEmpty(t, ana.SecretHash)
	assert.NotEmpty(t, ana.SecretSalt)
	assert.NotEqual(t, "pin-1234", string(ana.SecretHash), "secret must not be stored in plaintext")

	got, err := reg.FindByHandle(ctx, "anag")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.ID)
	assert.Equal(t, "Ana", got.Name)

	all, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "anag", all[0].Handle)

	_, err = reg.Register(ctx, "Ana Again", "Strength", "", "anag", "other")
	assert.ErrorIs(t, err, errs.ErrDuplicateHandle)
}

// TestRegisterRequiredFields verifies empty name or handle is rejected before
// any storage write.
func TestRegisterRequiredFields(t *testing.T) {
	store := newFakeStore()
	reg := NewRegistry(store, testLogger())
	ctx := context.Background()

	_, err := reg.Register(ctx, "", "Strength", "", "anag", "pin")
	assert.ErrorIs(t, err, errs.ErrEmptyName)

	_, err = reg.Register(ctx, "Ana", "Strength", "", "   ", "pin")
	assert.ErrorIs(t, err, errs.ErrEmptyName)

	assert.Empty(t, store.clients)
}

// TestFindByHandleNotFound verifies unknown handles surface ErrNotFound.
func TestFindByHandleNotFound(t *testing.T) {
	reg := NewRegistry(newFakeStore(), testLogger())

	_, err := reg.FindByHandle(context.Background(), "ghost")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

// TestVerifySecret verifies credential checks against the stored hash.
func TestVerifySecret(t *testing.T) {
	reg := NewRegistry(newFakeStore(), testLogger())
	ctx := context.Background()

	_, err := reg.Register(ctx, "Ana", "", "", "anag", "pin-1234")
	require.NoError(t, err)

	ok, err := reg.VerifySecret(ctx, "anag", "pin-1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reg.VerifySecret(ctx, "anag", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = reg.VerifySecret(ctx, "ghost", "pin-1234")
	require.NoError(t, err)
	assert.False(t, ok)
}
