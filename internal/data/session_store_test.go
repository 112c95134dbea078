package data_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/carematch-ui/internal/adapters/memory"
	"github.com/target/carematch-ui/internal/data"
	domainauth "github.com/target/carematch-ui/internal/domain/auth"
	apperrors "github.com/target/carematch-ui/internal/errors"
	"github.com/target/carematch-ui/internal/mocks"
)

func TestSessionStore_SetAndRead(t *testing.T) {
	kv := memory.NewKVStore()
	store := data.NewSessionStore(kv, nil)
	ctx := context.Background()

	assert.True(t, store.Snapshot(ctx).IsAnonymous())
	assert.False(t, store.Snapshot(ctx).Incomplete, "an empty store is plain anonymous")
	_, ok := store.Token(ctx)
	assert.False(t, ok)

	require.NoError(t, store.SetSession(ctx, "tok-1", domainauth.RoleEmployer))

	tok, ok := store.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-1", tok)
	role, ok := store.Role(ctx)
	require.True(t, ok)
	assert.Equal(t, domainauth.RoleEmployer, role)
	assert.Equal(t, domainauth.Session{Token: "tok-1", Role: domainauth.RoleEmployer}, store.Snapshot(ctx))

	raw, err := kv.GetMany(ctx, data.KeyToken, data.KeyUserRole)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok-1"), raw[data.KeyToken])
	assert.Equal(t, []byte("employer"), raw[data.KeyUserRole])
}

func TestSessionStore_Clear(t *testing.T) {
	kv := memory.NewKVStore()
	store := data.NewSessionStore(kv, nil)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, "tok", domainauth.RoleJobseeker))
	require.NoError(t, store.ClearSession(ctx))

	assert.True(t, store.Snapshot(ctx).IsAnonymous())
	assert.Empty(t, kv.Keys())
	require.NoError(t, store.ClearSession(ctx), "clearing twice is fine")
}

func TestSessionStore_MalformedDataReadsAnonymous(t *testing.T) {
	tests := []struct {
		name   string
		values map[string][]byte
	}{
		{"token without role", map[string][]byte{data.KeyToken: []byte("tok")}},
		{"role without token", map[string][]byte{data.KeyUserRole: []byte("employer")}},
		{"unknown role", map[string][]byte{data.KeyToken: []byte("tok"), data.KeyUserRole: []byte("admin")}},
		{"blank token", map[string][]byte{data.KeyToken: []byte("  "), data.KeyUserRole: []byte("employer")}},
		{"binary garbage", map[string][]byte{data.KeyToken: {0xff, 0x00}, data.KeyUserRole: {0xfe}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := memory.NewKVStore()
			require.NoError(t, kv.SetMany(context.Background(), tt.values))
			store := data.NewSessionStore(kv, nil)

			sess := store.Snapshot(context.Background())
			assert.True(t, sess.IsAnonymous())
			assert.True(t, sess.Incomplete)
			_, ok := store.Role(context.Background())
			assert.False(t, ok)
		})
	}
}

func TestSessionStore_RoleIsNormalised(t *testing.T) {
	kv := memory.NewKVStore()
	require.NoError(t, kv.SetMany(context.Background(), map[string][]byte{
		data.KeyToken:    []byte("tok"),
		data.KeyUserRole: []byte(" Employer "),
	}))
	store := data.NewSessionStore(kv, nil)

	assert.True(t, store.Snapshot(context.Background()).IsEmployer())
}

func TestSessionStore_SetSessionValidates(t *testing.T) {
	store := data.NewSessionStore(memory.NewKVStore(), nil)
	ctx := context.Background()

	err := store.SetSession(ctx, "", domainauth.RoleEmployer)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "token", apperrors.GetField(err))

	err = store.SetSession(ctx, "tok", domainauth.Role("admin"))
	require.Error(t, err)
	assert.Equal(t, "role", apperrors.GetField(err))
}

func TestSessionStore_BackendFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKVStore(ctrl)
	store := data.NewSessionStore(kv, nil)
	ctx := context.Background()
	boom := errors.New("connection reset")

	kv.EXPECT().GetMany(gomock.Any(), data.KeyToken, data.KeyUserRole).Return(nil, boom)
	assert.True(t, store.Snapshot(ctx).IsAnonymous(), "read failures degrade to anonymous")

	kv.EXPECT().SetMany(gomock.Any(), map[string][]byte{
		data.KeyToken:    []byte("tok"),
		data.KeyUserRole: []byte("jobseeker"),
	}).Return(boom)
	assert.ErrorIs(t, store.SetSession(ctx, "tok", domainauth.RoleJobseeker), boom)

	kv.EXPECT().DeleteMany(gomock.Any(), data.KeyToken, data.KeyUserRole).Return(boom)
	assert.ErrorIs(t, store.ClearSession(ctx), boom)
}
