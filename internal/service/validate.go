package service

import (
	"strings"

	apperrors "github.com/flowcoaching/site-server-go/internal/errors"
	"github.com/flowcoaching/site-server-go/internal/util"
)

// FieldErrors maps a field name to its human-readable validation message.
type FieldErrors map[string]string

// validationError folds collected field errors into one AppError. Messages
// are joined in the given field order so the response text is deterministic.
func validationError(fields FieldErrors, order []string) *apperrors.AppError {
	messages := make([]string, 0, len(fields))
	for _, f := range order {
		if msg, ok := fields[f]; ok {
			messages = append(messages, msg)
		}
	}
	return apperrors.ValidationError(strings.Join(messages, ". ")).WithDetails(fields)
}

var adminFieldOrder = []string{"email", "password", "name"}

func validateAdminInput(email, password, name string) *apperrors.AppError {
	fields := FieldErrors{}

	if !util.IsValidEmail(email) {
		fields["email"] = "Geçersiz email adresi"
	}
	if len(password) < minPasswordLength {
		fields["password"] = "Şifre en az 6 karakter olmalıdır"
	}
	if name == "" {
		fields["name"] = "Ad gereklidir"
	}

	if len(fields) > 0 {
		return validationError(fields, adminFieldOrder)
	}
	return nil
}

var leadFieldOrder = []string{"fullName", "email", "phone", "consent"}

// LeadInput is the raw public form payload before validation.
type LeadInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Consent  bool   `json:"consent"`
}

// Normalize trims the free-text fields in place.
func (in *LeadInput) Normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
}

func validateLeadInput(in LeadInput) *apperrors.AppError {
	fields := FieldErrors{}

	if len([]rune(in.FullName)) < 2 {
		fields["fullName"] = "Ad soyad en az 2 karakter olmalıdır"
	}
	if !util.IsValidEmail(in.Email) {
		fields["email"] = "Geçersiz email adresi"
	}
	if len(in.Phone) < 10 {
		fields["phone"] = "Telefon numarası en az 10 karakter olmalıdır"
	}
	if !in.Consent {
		fields["consent"] = "Devam etmek için onay vermeniz gereklidir"
	}

	if len(fields) > 0 {
		return validationError(fields, leadFieldOrder)
	}
	return nil
}
