package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/flowcoaching/site-server-go/internal/config"
	apperrors "github.com/flowcoaching/site-server-go/internal/errors"
	"github.com/flowcoaching/site-server-go/internal/model"
	"github.com/flowcoaching/site-server-go/internal/repository"
	"github.com/flowcoaching/site-server-go/internal/util"
)

type LeadService struct {
	leadRepo    repository.LeadRepository
	settingRepo repository.SettingRepository
	verifier    Verifier
	mailer      Mailer
}

func NewLeadService(
	leadRepo repository.LeadRepository,
	settingRepo repository.SettingRepository,
	verifier Verifier,
	mailer Mailer,
) *LeadService {
	return &LeadService{
		leadRepo:    leadRepo,
		settingRepo: settingRepo,
		verifier:    verifier,
		mailer:      mailer,
	}
}

// Submit validates a submission, runs the anti-automation check when one is
// configured, persists the lead, then kicks off the notification fan-out in
// the background. The caller never waits on, or hears about, notification
// delivery: the lead is durable before fan-out starts.
func (s *LeadService) Submit(ctx context.Context, in LeadInput, verificationToken string) (*model.Lead, error) {
	in.Normalize()
	if verr := validateLeadInput(in); verr != nil {
		return nil, verr
	}

	if s.verifier != nil && s.verifier.Enabled() {
		if verificationToken == "" {
			return nil, apperrors.ValidationError("Güvenlik doğrulaması gerekli.")
		}
		if !s.verifier.Verify(ctx, verificationToken) {
			return nil, apperrors.ValidationError("Güvenlik doğrulaması başarısız. Lütfen tekrar deneyin.")
		}
	}

	lead, err := s.leadRepo.Create(ctx, model.CreateLeadParams{
		ID:       uuid.NewString(),
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Consent:  in.Consent,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("leadId", lead.ID).Msg("lead created")

	go s.notify(*lead)

	return lead, nil
}

func (s *LeadService) List(ctx context.Context) ([]model.Lead, error) {
	return s.leadRepo.FindAll(ctx)
}

// notify runs detached from the request. Failures are logged and swallowed.
func (s *LeadService) notify(lead model.Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), config.NotifyTimeout)
	defer cancel()

	if s.mailer == nil {
		log.Warn().Msg("mailer not configured, skipping lead notification")
		return
	}

	setting, err := s.settingRepo.Get(ctx, model.SettingKeyNotificationEmails)
	if err != nil {
		log.Error().Err(err).Str("leadId", lead.ID).Msg("failed to read notification emails")
		return
	}
	if setting == nil || setting.Value == "" {
		log.Info().Msg("no notification emails configured, skipping email")
		return
	}

	recipients := util.SplitEmailList(setting.Value)
	if len(recipients) == 0 {
		log.Info().Msg("no valid notification emails found, skipping email")
		return
	}

	subject := LeadNotificationSubject(lead.FullName)
	body := LeadNotificationBody(lead.FullName, lead.Email, lead.Phone)

	start := time.Now()
	if err := s.mailer.Send(ctx, recipients, subject, body); err != nil {
		log.Error().Err(err).Str("leadId", lead.ID).Msg("lead notification failed")
		return
	}

	log.Info().
		Str("leadId", lead.ID).
		Int("recipients", len(recipients)).
		Dur("elapsed", time.Since(start)).
		Msg("lead notification delivered")
}
