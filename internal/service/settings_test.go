package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationEmails(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the empty string before any write", func(t *testing.T) {
		svc := NewSettingsService(newFakeSettingRepo())

		emails, err := svc.NotificationEmails(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", emails)
	})

	t.Run("round-trips the stored value verbatim", func(t *testing.T) {
		svc := NewSettingsService(newFakeSettingRepo())

		require.NoError(t, svc.SetNotificationEmails(ctx, "a@x.com, b@x.com"))
		emails, err := svc.NotificationEmails(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com, b@x.com", emails)
	})

	t.Run("last write wins", func(t *testing.T) {
		svc := NewSettingsService(newFakeSettingRepo())

		require.NoError(t, svc.SetNotificationEmails(ctx, "old@x.com"))
		require.NoError(t, svc.SetNotificationEmails(ctx, "new@x.com"))
		emails, err := svc.NotificationEmails(ctx)
		require.NoError(t, err)
		assert.Equal(t, "new@x.com", emails)
	})

	t.Run("accepts clearing the list", func(t *testing.T) {
		svc := NewSettingsService(newFakeSettingRepo())

		require.NoError(t, svc.SetNotificationEmails(ctx, "a@x.com"))
		require.NoError(t, svc.SetNotificationEmails(ctx, ""))
		emails, err := svc.NotificationEmails(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", emails)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		repo := newFakeSettingRepo()
		repo.err = errors.New("db down")
		svc := NewSettingsService(repo)

		_, err := svc.NotificationEmails(ctx)
		assert.Error(t, err)
	})
}
