package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	recordsRepo "salonhub/database/repository/records"
	"salonhub/models"
	"salonhub/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

func (s *DefaultSettingsService) notFound(err error, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: payment method %s", ErrNotFound, id)
	}
	return err
}

// masked returns a copy safe to send to clients.
func (s *DefaultSettingsService) masked(pm models.PaymentMethod) models.PaymentMethod {
	if !utils.IsSealed(pm.SecretKey) {
		pm.SecretKey = utils.MaskSecret(pm.SecretKey)
		return pm
	}
	plain := ""
	if s.sealer != nil {
		if v, err := s.sealer.Open(pm.SecretKey); err == nil {
			plain = v
		}
	}
	if plain == "" {
		plain = "****"
	}
	pm.SecretKey = utils.MaskSecret(plain)
	return pm
}

// seal replaces a plaintext secret with its sealed form. A sealed or masked
// value is left for the caller to resolve.
func (s *DefaultSettingsService) seal(pm *models.PaymentMethod) error {
	if pm.SecretKey == "" || utils.IsSealed(pm.SecretKey) {
		return nil
	}
	if s.sealer == nil {
		return ErrSealerNeeded
	}
	sealed, err := s.sealer.Seal(pm.SecretKey)
	if err != nil {
		return err
	}
	pm.SecretKey = sealed
	return nil
}

func isMasked(v string) bool {
	return strings.Contains(v, "•")
}

func (s *DefaultSettingsService) ListPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	methods, err := s.payments.List(ctx, recordsRepo.ListOptions{SortBy: "name"})
	if err != nil {
		return nil, err
	}
	for i := range methods {
		methods[i] = s.masked(methods[i])
	}
	return methods, nil
}

func (s *DefaultSettingsService) CreatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (*models.PaymentMethod, error) {
	pm.ID = ""
	if isMasked(pm.SecretKey) {
		pm.SecretKey = ""
	}
	if err := utils.ValidateStruct(pm); err != nil {
		return nil, err
	}
	if err := s.seal(&pm); err != nil {
		return nil, err
	}
	if err := s.payments.Create(ctx, &pm); err != nil {
		return nil, err
	}
	out := s.masked(pm)
	return &out, nil
}

// UpdatePaymentMethod keeps the stored secret when the client sends it back
// empty or masked.
func (s *DefaultSettingsService) UpdatePaymentMethod(ctx context.Context, id string, pm models.PaymentMethod) (*models.PaymentMethod, error) {
	existing, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	if err := utils.ValidateStruct(pm); err != nil {
		return nil, err
	}
	pm.DocMeta = existing.DocMeta
	if pm.SecretKey == "" || isMasked(pm.SecretKey) {
		pm.SecretKey = existing.SecretKey
	}
	if err := s.seal(&pm); err != nil {
		return nil, err
	}
	if err := s.payments.Update(ctx, &pm); err != nil {
		return nil, s.notFound(err, id)
	}
	out := s.masked(pm)
	return &out, nil
}

func (s *DefaultSettingsService) DeletePaymentMethod(ctx context.Context, id string) error {
	if err := s.payments.Delete(ctx, id); err != nil {
		return s.notFound(err, id)
	}
	return nil
}
