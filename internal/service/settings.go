package service

import (
	"context"

	"github.com/flowcoaching/site-server-go/internal/model"
	"github.com/flowcoaching/site-server-go/internal/repository"
)

type SettingsService struct {
	settingRepo repository.SettingRepository
}

func NewSettingsService(settingRepo repository.SettingRepository) *SettingsService {
	return &SettingsService{settingRepo: settingRepo}
}

// NotificationEmails returns the configured recipient list, or "" when the
// key has never been written.
func (s *SettingsService) NotificationEmails(ctx context.Context) (string, error) {
	setting, err := s.settingRepo.Get(ctx, model.SettingKeyNotificationEmails)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return "", nil
	}
	return setting.Value, nil
}

func (s *SettingsService) SetNotificationEmails(ctx context.Context, emails string) error {
	return s.settingRepo.Set(ctx, model.SettingKeyNotificationEmails, emails)
}
