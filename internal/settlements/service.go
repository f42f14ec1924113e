package settlements

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/vendors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
)

// VendorStore resolves vendors from the subaccount code carried by
// settlement webhooks.
type VendorStore interface {
	GetBySubaccountCode(ctx context.Context, code string) (*vendors.Vendor, error)
}

type Service interface {
	// RecordSuccess upserts the settlement batch and links the
	// vendor's eligible payments to it. Re-delivery of the same
	// settlement finds the existing row and links zero new payments.
	RecordSuccess(ctx context.Context, event Event) (*Settlement, int64, error)

	// RecordFailure records a failed settlement batch and flags the
	// vendor's affected payments.
	RecordFailure(ctx context.Context, event Event) (*Settlement, error)

	GetSettlement(ctx context.Context, vendorID, settlementID uuid.UUID) (*Settlement, error)
	ListVendorSettlements(ctx context.Context, vendorID uuid.UUID, page, limit int) ([]Settlement, int64, error)
}

type service struct {
	repo    Repository
	vendors VendorStore
	log     *logger.Logger
}

func NewService(repo Repository, vendorStore VendorStore, log *logger.Logger) Service {
	return &service{repo: repo, vendors: vendorStore, log: log}
}

func (s *service) RecordSuccess(ctx context.Context, event Event) (*Settlement, int64, error) {
	candidate, err := s.buildCandidate(ctx, event, StatusSuccess)
	if err != nil {
		return nil, 0, err
	}

	settlement, linked, err := s.repo.UpsertAndLinkEligible(ctx, candidate)
	if err != nil {
		return nil, 0, err
	}

	s.log.LogSettlementLinked(ctx, settlement.Code, linked)
	return settlement, linked, nil
}

func (s *service) RecordFailure(ctx context.Context, event Event) (*Settlement, error) {
	candidate, err := s.buildCandidate(ctx, event, StatusFailed)
	if err != nil {
		return nil, err
	}

	settlement, flagged, err := s.repo.UpsertAndFailEligible(ctx, candidate)
	if err != nil {
		return nil, err
	}

	s.log.Warn("settlement failed",
		"settlement_code", settlement.Code,
		"vendor_id", settlement.VendorID.String(),
		"payments_flagged", flagged,
	)
	return settlement, nil
}

func (s *service) buildCandidate(ctx context.Context, event Event, status Status) (*Settlement, error) {
	if event.Code == "" {
		return nil, apperrors.Validation("settlement code is required")
	}

	vendor, err := s.vendors.GetBySubaccountCode(ctx, event.SubaccountCode)
	if err != nil {
		return nil, err
	}

	settledAt := event.EffectiveAt
	if settledAt == nil && status == StatusSuccess {
		now := time.Now()
		settledAt = &now
	}

	candidate := &Settlement{
		ID:             uuid.New(),
		Code:           event.Code,
		VendorID:       vendor.ID,
		SubaccountCode: event.SubaccountCode,
		TotalAmount:    event.TotalAmount,
		Currency:       event.Currency,
		Status:         status,
		BankName:       event.BankName,
		AccountNumber:  event.AccountNumber,
		SettledAt:      settledAt,
	}
	if candidate.Currency == "" {
		candidate.Currency = "NGN"
	}
	return candidate, nil
}

func (s *service) GetSettlement(ctx context.Context, vendorID, settlementID uuid.UUID) (*Settlement, error) {
	settlement, err := s.repo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.VendorID != vendorID {
		return nil, apperrors.NotFound("settlement not found")
	}
	return settlement, nil
}

func (s *service) ListVendorSettlements(ctx context.Context, vendorID uuid.UUID, page, limit int) ([]Settlement, int64, error) {
	return s.repo.ListByVendor(ctx, vendorID, page, limit)
}
