package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/repository"
	"gorm.io/gorm"
)

// ProfileFlow reads and updates the admin_details row of the authenticated admin
type ProfileFlow interface {
	GetProfile(ctx context.Context, adminID uint) (*dto.AdminProfileResponse, error)
	UpdateProfile(ctx context.Context, adminID uint, req *dto.AdminDetailsRequest) (*dto.AdminProfileResponse, error)
}

// ProfileFlowImpl implements ProfileFlow
type ProfileFlowImpl struct {
	adminRepo   repository.AdminAuthRepository
	detailsRepo repository.AdminDetailsRepository
	db          *gorm.DB
}

func NewProfileFlow(adminRepo repository.AdminAuthRepository, detailsRepo repository.AdminDetailsRepository, db *gorm.DB) ProfileFlow {
	return &ProfileFlowImpl{
		adminRepo:   adminRepo,
		detailsRepo: detailsRepo,
		db:          db,
	}
}

func (f *ProfileFlowImpl) GetProfile(ctx context.Context, adminID uint) (*dto.AdminProfileResponse, error) {
	admin, err := f.admin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	details, err := f.detailsRepo.ByAdminAuthID(ctx, adminID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_LOOKUP_FAILED", "Failed to load profile", err)
	}
	return toProfileResponse(admin, details), nil
}

// UpdateProfile creates the profile row on first write. Empty strings clear a field.
func (f *ProfileFlowImpl) UpdateProfile(ctx context.Context, adminID uint, req *dto.AdminDetailsRequest) (*dto.AdminProfileResponse, error) {
	var (
		admin   *models.AdminAuth
		details *models.AdminDetails
	)
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		var err error
		admin, err = f.admin(txCtx, adminID)
		if err != nil {
			return err
		}

		details, err = f.detailsRepo.ByAdminAuthID(txCtx, adminID)
		if err != nil {
			return NewBusinessError("PROFILE_LOOKUP_FAILED", "Failed to load profile", err)
		}

		username := trimmedOrNil(req.Username)
		if username != nil {
			taken, err := f.detailsRepo.ByFilter(txCtx, models.AdminDetailsFilter{Username: username}, "", 1, 0)
			if err != nil {
				return NewBusinessError("PROFILE_LOOKUP_FAILED", "Failed to load profile", err)
			}
			if len(taken) > 0 && taken[0].AdminAuthID != adminID {
				return NewBusinessError("USERNAME_ALREADY_EXISTS", "Username is already taken", ErrUsernameAlreadyExists)
			}
		}

		if details == nil {
			details = &models.AdminDetails{
				AdminAuthID: adminID,
				Username:    username,
				CompanyName: trimmedOrNil(req.CompanyName),
			}
			err = f.detailsRepo.Save(txCtx, details)
		} else {
			if req.Username != nil {
				details.Username = username
			}
			if req.CompanyName != nil {
				details.CompanyName = trimmedOrNil(req.CompanyName)
			}
			err = f.detailsRepo.Update(txCtx, details)
		}
		if repository.IsDuplicateKey(err) {
			return NewBusinessError("USERNAME_ALREADY_EXISTS", "Username is already taken", ErrUsernameAlreadyExists)
		}
		if err != nil {
			return NewBusinessError("PROFILE_UPDATE_FAILED", "Failed to update profile", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toProfileResponse(admin, details), nil
}

func (f *ProfileFlowImpl) admin(ctx context.Context, adminID uint) (*models.AdminAuth, error) {
	admin, err := f.adminRepo.ByID(ctx, adminID)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return nil, NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}
	return admin, nil
}

func toProfileResponse(admin *models.AdminAuth, details *models.AdminDetails) *dto.AdminProfileResponse {
	resp := &dto.AdminProfileResponse{Admin: ToAdminDTO(*admin)}
	if details != nil {
		resp.DisplayUsername = details.Username
		resp.CompanyName = details.CompanyName
	}
	return resp
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
