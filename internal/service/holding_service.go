package service

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/request"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/lifecycle"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/repository"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/validation"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/valuation"
)

// HoldingService handles holding lifecycle business logic: creation with
// duplicate detection, updates with shared-field propagation across name
// groups, and deletion.
type HoldingService struct {
	db          *sql.DB
	holdingRepo *repository.HoldingRepository
}

// NewHoldingService creates a new HoldingService with the provided dependencies.
func NewHoldingService(db *sql.DB, holdingRepo *repository.HoldingRepository) *HoldingService {
	return &HoldingService{
		db:          db,
		holdingRepo: holdingRepo,
	}
}

// CreateHoldingResult is a created holding plus an optional near-duplicate
// warning. The warning never blocks creation; it surfaces a similarly named
// existing asset so the user can merge instead of fragmenting the group.
type CreateHoldingResult struct {
	Holding model.Holding `json:"holding"`
	Warning string        `json:"warning,omitempty"`
}

// CreateHolding validates and stores a new holding.
//
// An exact name match with an existing holding is rejected unless the request
// opts into joining the name group via AllowExisting, in which case the new
// record inherits the group's shared fields and only contributes its own
// account-specific ones. A normalized near-match produces a warning on the
// result instead.
func (s *HoldingService) CreateHolding(ctx context.Context, req request.CreateHoldingRequest) (CreateHoldingResult, error) {
	if err := validation.ValidateCreateHolding(req); err != nil {
		return CreateHoldingResult{}, err
	}

	h, err := holdingFromRequest(req)
	if err != nil {
		return CreateHoldingResult{}, err
	}
	// Derive before the duplicate check so a cash holding is compared under
	// its canonical name, not whatever label the request carried.
	applyDerivations(&h)

	names, err := s.holdingRepo.GetNames()
	if err != nil {
		return CreateHoldingResult{}, fmt.Errorf("failed to check existing names: %w", err)
	}

	var warning string
	if lo.Contains(names, h.Name) {
		if !req.AllowExisting {
			return CreateHoldingResult{}, apperrors.ErrHoldingAlreadyExists
		}
		// Joining an existing group: the group's shared fields win over
		// whatever the request carried for them.
		siblings, err := s.holdingRepo.GetHoldings(model.HoldingFilter{Name: h.Name})
		if err != nil {
			return CreateHoldingResult{}, fmt.Errorf("failed to load name group: %w", err)
		}
		if len(siblings) > 0 {
			inheritShared(&h, siblings[0])
			applyDerivations(&h)
		}
	} else if near, found := lifecycle.FindNearDuplicate(h.Name, names); found {
		warning = fmt.Sprintf("a similarly named holding %q already exists", near)
	}

	now := time.Now()
	h.ID = uuid.New().String()
	h.CreatedAt = now
	h.UpdatedAt = now

	if err := s.holdingRepo.InsertHolding(ctx, h); err != nil {
		return CreateHoldingResult{}, fmt.Errorf("failed to create holding: %w", err)
	}

	return CreateHoldingResult{Holding: h, Warning: warning}, nil
}

// GetHolding retrieves a single holding by ID.
func (s *HoldingService) GetHolding(holdingID string) (model.Holding, error) {
	if err := validation.ValidateUUID(holdingID); err != nil {
		return model.Holding{}, err
	}
	return s.holdingRepo.GetHoldingOnID(holdingID)
}

// GetHoldings retrieves holdings matching the filter.
func (s *HoldingService) GetHoldings(filter model.HoldingFilter) ([]model.Holding, error) {
	return s.holdingRepo.GetHoldings(filter)
}

// GetNameGroups derives the shared-asset index from current holdings: every
// distinct name with the IDs of the holdings carrying it. Groups are
// recomputed on each call and never stored.
func (s *HoldingService) GetNameGroups() ([]model.NameGroup, error) {
	holdings, err := s.holdingRepo.GetHoldings(model.HoldingFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve holdings: %w", err)
	}

	byName := lo.GroupBy(holdings, func(h model.Holding) string { return h.Name })
	names := lo.Keys(byName)
	slices.Sort(names)

	groups := make([]model.NameGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, model.NameGroup{
			Name: name,
			HoldingIDs: lo.Map(byName[name], func(h model.Holding, _ int) string {
				return h.ID
			}),
		})
	}
	return groups, nil
}

// UpdateHolding applies a partial update to a holding.
//
// The edit is split into shared and account-specific fields by the holding's
// asset class. Shared-field changes fan out to every holding with the same
// name; account-specific changes stay on the addressed record. Both writes
// happen in one transaction so siblings can never observe a half-applied
// edit.
func (s *HoldingService) UpdateHolding(ctx context.Context, holdingID string, req request.UpdateHoldingRequest) (model.Holding, error) {
	if err := validation.ValidateUUID(holdingID); err != nil {
		return model.Holding{}, err
	}
	if err := validation.ValidateUpdateHolding(req); err != nil {
		return model.Holding{}, err
	}

	stored, err := s.holdingRepo.GetHoldingOnID(holdingID)
	if err != nil {
		return model.Holding{}, err
	}

	updated := stored
	if err := applyUpdateRequest(&updated, req); err != nil {
		return model.Holding{}, err
	}
	applyDerivations(&updated)
	updated.UpdatedAt = time.Now()

	edit := lifecycle.ClassifyEdit(stored, updated)
	if edit.Kind == lifecycle.EditNone {
		return stored, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txRepo := s.holdingRepo.WithTx(tx)
	if len(edit.SharedFields) > 0 {
		// Fan out under the stored name so a simultaneous rename still
		// reaches the whole group.
		if err := txRepo.UpdateSharedFields(ctx, stored.Name, updated, edit); err != nil {
			return model.Holding{}, fmt.Errorf("failed to propagate shared fields: %w", err)
		}
	}
	if err := txRepo.UpdateHolding(ctx, updated); err != nil {
		return model.Holding{}, fmt.Errorf("failed to update holding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Holding{}, fmt.Errorf("failed to commit update: %w", err)
	}

	return updated, nil
}

// DeleteHolding removes a single holding. Siblings in its name group are
// untouched; the group simply shrinks.
func (s *HoldingService) DeleteHolding(ctx context.Context, holdingID string) error {
	if err := validation.ValidateUUID(holdingID); err != nil {
		return err
	}
	return s.holdingRepo.DeleteHolding(ctx, holdingID)
}

// holdingFromRequest builds a Holding from a create request, parsing dates
// and filling derived identity fields.
func holdingFromRequest(req request.CreateHoldingRequest) (model.Holding, error) {
	h := model.Holding{
		Class:            refdata.AssetClass(req.Class),
		SubClass:         req.SubClass,
		Name:             req.Name,
		Code:             req.Code,
		AccountEntity:    req.AccountEntity,
		AccountBank:      req.AccountBank,
		Quantity:         req.Quantity,
		Price:            req.Price,
		OriginCurrency:   req.OriginCurrency,
		Factor:           req.Factor,
		Ytw:              req.Ytw,
		PECompanyValue:   req.PECompanyValue,
		PEHoldingPercent: req.PEHoldingPercent,
	}

	if req.MaturityDate != nil {
		maturity, err := validation.ParseTime(*req.MaturityDate)
		if err != nil {
			return model.Holding{}, &validation.Error{Fields: map[string]string{
				"maturityDate": "invalid date format",
			}}
		}
		h.MaturityDate = &maturity
	}

	return h, nil
}

// applyUpdateRequest copies the provided fields of a partial update onto h.
func applyUpdateRequest(h *model.Holding, req request.UpdateHoldingRequest) error {
	if req.Class != nil {
		h.Class = refdata.AssetClass(*req.Class)
	}
	if req.SubClass != nil {
		h.SubClass = *req.SubClass
	}
	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Code != nil {
		h.Code = *req.Code
	}
	if req.AccountEntity != nil {
		h.AccountEntity = *req.AccountEntity
	}
	if req.AccountBank != nil {
		h.AccountBank = *req.AccountBank
	}
	if req.Quantity != nil {
		h.Quantity = *req.Quantity
	}
	if req.Price != nil {
		h.Price = *req.Price
	}
	if req.OriginCurrency != nil {
		h.OriginCurrency = *req.OriginCurrency
	}
	if req.Factor != nil {
		h.Factor = req.Factor
	}
	if req.MaturityDate != nil {
		maturity, err := validation.ParseTime(*req.MaturityDate)
		if err != nil {
			return &validation.Error{Fields: map[string]string{
				"maturityDate": "invalid date format",
			}}
		}
		h.MaturityDate = &maturity
	}
	if req.Ytw != nil {
		h.Ytw = req.Ytw
	}
	if req.PECompanyValue != nil {
		h.PECompanyValue = req.PECompanyValue
	}
	if req.PEHoldingPercent != nil {
		h.PEHoldingPercent = req.PEHoldingPercent
	}
	return nil
}

// applyDerivations enforces the fields the user never sets directly: the
// beneficiary follows the account entity, cash holdings get a canonical name,
// unit price and currency, and a complete ownership-stake valuation overrides
// any manually entered private equity price.
func applyDerivations(h *model.Holding) {
	h.Beneficiary = refdata.BeneficiaryOf(h.AccountEntity)

	if h.Class == refdata.ClassCash {
		h.Name = refdata.CashName(h.SubClass)
		h.Price = 1
		h.OriginCurrency = h.SubClass
	}

	if h.HasDerivedPrice() {
		h.Price = valuation.DerivedPrice(*h)
	}
}

// inheritShared copies the group's shared fields onto a holding that is
// joining an existing name group.
func inheritShared(h *model.Holding, sibling model.Holding) {
	h.Class = sibling.Class
	edit := lifecycle.Edit{
		Kind:         lifecycle.EditSharedOnly,
		SharedFields: lifecycle.SharedFields(sibling.Class),
	}
	lifecycle.PropagateShared(h, sibling, edit)
}
