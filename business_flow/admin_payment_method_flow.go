package businessflow

import (
	"context"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/repository"
	"github.com/amirphl/Omoikane/utils"
	"gorm.io/gorm"
)

// AdminPaymentMethodFlow manages the payment methods an admin receives payouts through.
// At most one active method per admin is the default.
type AdminPaymentMethodFlow interface {
	List(ctx context.Context, adminID uint) ([]dto.AdminPaymentMethodDTO, error)
	Create(ctx context.Context, adminID uint, req *dto.AdminPaymentMethodRequest) (*dto.AdminPaymentMethodDTO, error)
	Update(ctx context.Context, adminID, id uint, req *dto.UpdateAdminPaymentMethodRequest) (*dto.AdminPaymentMethodDTO, error)
	Delete(ctx context.Context, adminID, id uint) error
}

// AdminPaymentMethodFlowImpl implements AdminPaymentMethodFlow
type AdminPaymentMethodFlowImpl struct {
	repo               repository.AdminPaymentMethodRepository
	paymentMethodRepo  repository.PaymentMethodRepository
	emailPaymentDetail repository.EmailPaymentDetailRepository
	db                 *gorm.DB
}

func NewAdminPaymentMethodFlow(
	repo repository.AdminPaymentMethodRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	emailPaymentDetailRepo repository.EmailPaymentDetailRepository,
	db *gorm.DB,
) AdminPaymentMethodFlow {
	return &AdminPaymentMethodFlowImpl{
		repo:               repo,
		paymentMethodRepo:  paymentMethodRepo,
		emailPaymentDetail: emailPaymentDetailRepo,
		db:                 db,
	}
}

func (f *AdminPaymentMethodFlowImpl) List(ctx context.Context, adminID uint) ([]dto.AdminPaymentMethodDTO, error) {
	rows, err := f.repo.ByFilter(ctx, models.AdminPaymentMethodFilter{AdminAuthID: &adminID}, "id ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("ADMIN_PAYMENT_METHOD_LIST_FAILED", "Failed to list payment methods", err)
	}

	out := make([]dto.AdminPaymentMethodDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, ToAdminPaymentMethodDTO(m))
	}
	return out, nil
}

func (f *AdminPaymentMethodFlowImpl) Create(ctx context.Context, adminID uint, req *dto.AdminPaymentMethodRequest) (*dto.AdminPaymentMethodDTO, error) {
	active := req.ActiveFlag == nil || *req.ActiveFlag
	isDefault := utils.IsTrue(req.IsDefault)
	if isDefault && !active {
		return nil, NewBusinessError("INACTIVE_DEFAULT", "An inactive payment method cannot be the default", ErrInactiveDefault)
	}

	apm := &models.AdminPaymentMethod{
		AdminAuthID:          adminID,
		PaymentMethodID:      req.PaymentMethodID,
		EmailPaymentDetailID: req.EmailPaymentDetailID,
		IsDefault:            &isDefault,
		ActiveFlag:           &active,
	}

	var created *models.AdminPaymentMethod
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.checkReferences(txCtx, req.PaymentMethodID, req.EmailPaymentDetailID); err != nil {
			return err
		}
		// the previous default goes first, the unique default index rejects two at once
		if isDefault {
			if err := f.repo.ClearDefault(txCtx, adminID, 0); err != nil {
				return NewBusinessError("ADMIN_PAYMENT_METHOD_UPDATE_FAILED", "Failed to update default payment method", err)
			}
		}
		if err := f.repo.Save(txCtx, apm); err != nil {
			return defaultWriteError(err, "ADMIN_PAYMENT_METHOD_CREATE_FAILED", "Failed to add payment method")
		}

		var err error
		created, err = f.repo.ByID(txCtx, apm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := ToAdminPaymentMethodDTO(created)
	return &out, nil
}

func (f *AdminPaymentMethodFlowImpl) Update(ctx context.Context, adminID, id uint, req *dto.UpdateAdminPaymentMethodRequest) (*dto.AdminPaymentMethodDTO, error) {
	var updated *models.AdminPaymentMethod
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		apm, err := f.owned(txCtx, adminID, id)
		if err != nil {
			return err
		}

		fields := map[string]any{}
		if req.EmailPaymentDetailID != nil {
			if err := f.checkReferences(txCtx, apm.PaymentMethodID, req.EmailPaymentDetailID); err != nil {
				return err
			}
			fields["email_payment_detail_id"] = *req.EmailPaymentDetailID
		}

		active := utils.IsTrue(apm.ActiveFlag)
		if req.ActiveFlag != nil {
			active = *req.ActiveFlag
			fields["active_flag"] = active
		}
		isDefault := utils.IsTrue(apm.IsDefault)
		if req.IsDefault != nil {
			isDefault = *req.IsDefault
		}
		if !active {
			if req.IsDefault != nil && *req.IsDefault {
				return NewBusinessError("INACTIVE_DEFAULT", "An inactive payment method cannot be the default", ErrInactiveDefault)
			}
			// deactivating the default clears it
			isDefault = false
		}
		if isDefault != utils.IsTrue(apm.IsDefault) {
			fields["is_default"] = isDefault
		}

		if isDefault {
			if err := f.repo.ClearDefault(txCtx, adminID, apm.ID); err != nil {
				return NewBusinessError("ADMIN_PAYMENT_METHOD_UPDATE_FAILED", "Failed to update default payment method", err)
			}
		}
		if err := f.repo.UpdateFields(txCtx, apm.ID, fields); err != nil {
			return defaultWriteError(err, "ADMIN_PAYMENT_METHOD_UPDATE_FAILED", "Failed to update payment method")
		}

		updated, err = f.repo.ByID(txCtx, apm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := ToAdminPaymentMethodDTO(updated)
	return &out, nil
}

func (f *AdminPaymentMethodFlowImpl) Delete(ctx context.Context, adminID, id uint) error {
	return repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if _, err := f.owned(txCtx, adminID, id); err != nil {
			return err
		}
		if _, err := f.repo.Delete(txCtx, id); err != nil {
			return NewBusinessError("ADMIN_PAYMENT_METHOD_DELETE_FAILED", "Failed to remove payment method", err)
		}
		return nil
	})
}

// owned loads the payment method id if it belongs to adminID
func (f *AdminPaymentMethodFlowImpl) owned(ctx context.Context, adminID, id uint) (*models.AdminPaymentMethod, error) {
	apm, err := f.repo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ADMIN_PAYMENT_METHOD_LOOKUP_FAILED", "Failed to lookup payment method", err)
	}
	if apm == nil || apm.AdminAuthID != adminID {
		return nil, NewBusinessErrorf("ADMIN_PAYMENT_METHOD_NOT_FOUND", "Payment method %d not found", ErrNotFound, id)
	}
	return apm, nil
}

func (f *AdminPaymentMethodFlowImpl) checkReferences(ctx context.Context, paymentMethodID uint, emailPaymentDetailID *uint) error {
	pm, err := f.paymentMethodRepo.ByID(ctx, paymentMethodID)
	if err != nil {
		return NewBusinessError("PAYMENT_METHOD_LOOKUP_FAILED", "Failed to lookup payment method", err)
	}
	if pm == nil {
		return NewBusinessError("PAYMENT_METHOD_NOT_FOUND", "Payment method not found", ErrPaymentMethodNotFound)
	}

	if emailPaymentDetailID == nil {
		return nil
	}
	detail, err := f.emailPaymentDetail.ByID(ctx, *emailPaymentDetailID)
	if err != nil {
		return NewBusinessError("EMAIL_PAYMENT_DETAIL_LOOKUP_FAILED", "Failed to lookup email payment detail", err)
	}
	if detail == nil {
		return NewBusinessError("EMAIL_PAYMENT_DETAIL_NOT_FOUND", "Email payment detail not found", ErrEmailPaymentDetailNotFound)
	}
	return nil
}

func ToAdminPaymentMethodDTO(m *models.AdminPaymentMethod) dto.AdminPaymentMethodDTO {
	out := dto.AdminPaymentMethodDTO{
		ID:         m.ID,
		IsDefault:  utils.IsTrue(m.IsDefault),
		ActiveFlag: utils.IsTrue(m.ActiveFlag),
		CreatedAt:  utils.FormatRFC3339(m.CreatedAt),
		UpdatedAt:  utils.FormatRFC3339(m.UpdatedAt),
	}
	if m.PaymentMethod != nil {
		pm := ToPaymentMethodDTO(m.PaymentMethod)
		out.PaymentMethod = &pm
	}
	if m.EmailPaymentDetail != nil {
		detail := ToEmailPaymentDetailDTO(m.EmailPaymentDetail)
		out.EmailPaymentDetail = &detail
	}
	return out
}

// defaultWriteError reports a lost race for the admin's single default as a conflict
func defaultWriteError(err error, code, message string) error {
	if repository.IsDuplicateKey(err) {
		return NewBusinessError("ADMIN_PAYMENT_METHOD_DEFAULT_CONFLICT", "Another default payment method was set concurrently", ErrAlreadyExists)
	}
	return NewBusinessError(code, message, err)
}
