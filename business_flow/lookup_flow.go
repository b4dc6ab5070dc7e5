package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/repository"
	"github.com/amirphl/Omoikane/utils"
)

type (
	ServiceFlow       = CatalogFlow[dto.ServiceRequest, dto.ServiceDTO]
	PaymentMethodFlow = CatalogFlow[dto.PaymentMethodRequest, dto.PaymentMethodDTO]
	LanguageFlow      = CatalogFlow[dto.LanguageRequest, dto.LanguageDTO]
	CurrencyFlow      = CatalogFlow[dto.CurrencyRequest, dto.CurrencyDTO]
	UnitFlow          = CatalogFlow[dto.UnitRequest, dto.UnitDTO]
	RoleFlow          = CatalogFlow[dto.RoleRequest, dto.RoleDTO]
)

// SpecializationFlow adds the active toggle to the catalog operations
type SpecializationFlow interface {
	CatalogFlow[dto.SpecializationRequest, dto.SpecializationDTO]
	SetActive(ctx context.Context, id uint, active bool) (*dto.SpecializationDTO, error)
	Toggle(ctx context.Context, id uint) (*dto.SpecializationDTO, error)
	All(ctx context.Context) ([]dto.SpecializationDTO, error)
}

func NewServiceFlow(repo repository.ServiceRepository) ServiceFlow {
	return newCatalogFlow(catalogEntity[models.Service, models.ServiceFilter, dto.ServiceRequest, dto.ServiceDTO]{
		repo:    repo,
		code:    "SERVICE",
		label:   "service",
		orderBy: "name ASC",
		build: func(req *dto.ServiceRequest) *models.Service {
			return &models.Service{Name: strings.TrimSpace(req.Name)}
		},
		apply: func(m *models.Service, req *dto.ServiceRequest) {
			m.Name = strings.TrimSpace(req.Name)
		},
		toDTO: ToServiceDTO,
		search: func(term string) models.ServiceFilter {
			return models.ServiceFilter{NameLike: optionalSearch(term)}
		},
	})
}

func NewPaymentMethodFlow(repo repository.PaymentMethodRepository) PaymentMethodFlow {
	return newCatalogFlow(catalogEntity[models.PaymentMethod, models.PaymentMethodFilter, dto.PaymentMethodRequest, dto.PaymentMethodDTO]{
		repo:    repo,
		code:    "PAYMENT_METHOD",
		label:   "payment method",
		orderBy: "name ASC",
		build: func(req *dto.PaymentMethodRequest) *models.PaymentMethod {
			return &models.PaymentMethod{Name: strings.TrimSpace(req.Name)}
		},
		apply: func(m *models.PaymentMethod, req *dto.PaymentMethodRequest) {
			m.Name = strings.TrimSpace(req.Name)
		},
		toDTO: ToPaymentMethodDTO,
		search: func(term string) models.PaymentMethodFilter {
			return models.PaymentMethodFilter{NameLike: optionalSearch(term)}
		},
	})
}

func NewLanguageFlow(repo repository.LanguageRepository) LanguageFlow {
	return newCatalogFlow(catalogEntity[models.Language, models.LanguageFilter, dto.LanguageRequest, dto.LanguageDTO]{
		repo:    repo,
		code:    "LANGUAGE",
		label:   "language",
		orderBy: "name ASC",
		build: func(req *dto.LanguageRequest) *models.Language {
			return &models.Language{Name: strings.TrimSpace(req.Name), Code: strings.ToLower(strings.TrimSpace(req.Code))}
		},
		apply: func(m *models.Language, req *dto.LanguageRequest) {
			m.Name = strings.TrimSpace(req.Name)
			m.Code = strings.ToLower(strings.TrimSpace(req.Code))
		},
		toDTO: ToLanguageDTO,
		search: func(term string) models.LanguageFilter {
			return models.LanguageFilter{NameLike: optionalSearch(term)}
		},
	})
}

func NewCurrencyFlow(repo repository.CurrencyRepository) CurrencyFlow {
	return newCatalogFlow(catalogEntity[models.Currency, models.CurrencyFilter, dto.CurrencyRequest, dto.CurrencyDTO]{
		repo:    repo,
		code:    "CURRENCY",
		label:   "currency",
		orderBy: "code ASC",
		build: func(req *dto.CurrencyRequest) *models.Currency {
			return &models.Currency{Code: req.Code, Symbol: req.Symbol, Name: strings.TrimSpace(req.Name)}
		},
		apply: func(m *models.Currency, req *dto.CurrencyRequest) {
			m.Code = req.Code
			m.Symbol = req.Symbol
			m.Name = strings.TrimSpace(req.Name)
		},
		toDTO: ToCurrencyDTO,
		search: func(term string) models.CurrencyFilter {
			return models.CurrencyFilter{NameLike: optionalSearch(term)}
		},
	})
}

func NewUnitFlow(repo repository.UnitRepository) UnitFlow {
	return newCatalogFlow(catalogEntity[models.Unit, models.UnitFilter, dto.UnitRequest, dto.UnitDTO]{
		repo:    repo,
		code:    "UNIT",
		label:   "unit",
		orderBy: "name ASC",
		build: func(req *dto.UnitRequest) *models.Unit {
			return &models.Unit{Name: strings.TrimSpace(req.Name)}
		},
		apply: func(m *models.Unit, req *dto.UnitRequest) {
			m.Name = strings.TrimSpace(req.Name)
		},
		toDTO: ToUnitDTO,
		search: func(term string) models.UnitFilter {
			return models.UnitFilter{NameLike: optionalSearch(term)}
		},
	})
}

func NewRoleFlow(repo repository.RoleRepository) RoleFlow {
	return newCatalogFlow(catalogEntity[models.Role, models.RoleFilter, dto.RoleRequest, dto.RoleDTO]{
		repo:    repo,
		code:    "ROLE",
		label:   "role",
		orderBy: "name ASC",
		build: func(req *dto.RoleRequest) *models.Role {
			return &models.Role{Name: strings.TrimSpace(req.Name), Category: req.Category}
		},
		apply: func(m *models.Role, req *dto.RoleRequest) {
			m.Name = strings.TrimSpace(req.Name)
			m.Category = req.Category
		},
		toDTO: ToRoleDTO,
		search: func(term string) models.RoleFilter {
			return models.RoleFilter{NameLike: optionalSearch(term)}
		},
	})
}

// SpecializationFlowImpl implements SpecializationFlow
type SpecializationFlowImpl struct {
	*CatalogFlowImpl[models.Specialization, models.SpecializationFilter, dto.SpecializationRequest, dto.SpecializationDTO]
	repo repository.SpecializationRepository
}

func NewSpecializationFlow(repo repository.SpecializationRepository) SpecializationFlow {
	return &SpecializationFlowImpl{
		CatalogFlowImpl: newCatalogFlow(catalogEntity[models.Specialization, models.SpecializationFilter, dto.SpecializationRequest, dto.SpecializationDTO]{
			repo:    repo,
			code:    "SPECIALIZATION",
			label:   "specialization",
			orderBy: "domain_name ASC",
			build: func(req *dto.SpecializationRequest) *models.Specialization {
				active := true
				if req.ActiveFlag != nil {
					active = *req.ActiveFlag
				}
				return &models.Specialization{DomainName: strings.TrimSpace(req.DomainName), ActiveFlag: &active}
			},
			apply: func(m *models.Specialization, req *dto.SpecializationRequest) {
				m.DomainName = strings.TrimSpace(req.DomainName)
				if req.ActiveFlag != nil {
					m.ActiveFlag = utils.ToPtr(*req.ActiveFlag)
				}
			},
			toDTO: ToSpecializationDTO,
			search: func(term string) models.SpecializationFilter {
				return models.SpecializationFilter{DomainNameLike: optionalSearch(term)}
			},
		}),
		repo: repo,
	}
}

func (f *SpecializationFlowImpl) SetActive(ctx context.Context, id uint, active bool) (*dto.SpecializationDTO, error) {
	m, err := f.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := f.repo.SetActive(ctx, id, active); err != nil {
		return nil, NewBusinessError("SPECIALIZATION_UPDATE_FAILED", "Failed to update specialization", err)
	}

	m.ActiveFlag = &active
	out := ToSpecializationDTO(m)
	return &out, nil
}

// Toggle flips the active flag of a specialization
func (f *SpecializationFlowImpl) Toggle(ctx context.Context, id uint) (*dto.SpecializationDTO, error) {
	m, err := f.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.SetActive(ctx, id, !utils.IsTrue(m.ActiveFlag))
}

// All returns every specialization ordered by domain name
func (f *SpecializationFlowImpl) All(ctx context.Context) ([]dto.SpecializationDTO, error) {
	rows, err := f.repo.ByFilter(ctx, models.SpecializationFilter{}, "domain_name ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("SPECIALIZATION_LIST_FAILED", "Failed to list specializations", err)
	}
	out := make([]dto.SpecializationDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, ToSpecializationDTO(m))
	}
	return out, nil
}

func ToServiceDTO(m *models.Service) dto.ServiceDTO {
	return dto.ServiceDTO{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: utils.FormatRFC3339(m.CreatedAt),
		UpdatedAt: utils.FormatRFC3339(m.UpdatedAt),
	}
}

func ToSpecializationDTO(m *models.Specialization) dto.SpecializationDTO {
	return dto.SpecializationDTO{
		ID:         m.ID,
		DomainName: m.DomainName,
		ActiveFlag: utils.IsTrue(m.ActiveFlag),
		CreatedAt:  utils.FormatRFC3339(m.CreatedAt),
		UpdatedAt:  utils.FormatRFC3339(m.UpdatedAt),
	}
}

func ToPaymentMethodDTO(m *models.PaymentMethod) dto.PaymentMethodDTO {
	return dto.PaymentMethodDTO{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: utils.FormatRFC3339(m.CreatedAt),
		UpdatedAt: utils.FormatRFC3339(m.UpdatedAt),
	}
}

func ToLanguageDTO(m *models.Language) dto.LanguageDTO {
	return dto.LanguageDTO{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		CreatedAt: utils.FormatRFC3339(m.CreatedAt),
		UpdatedAt: utils.FormatRFC3339(m.UpdatedAt),
	}
}

func ToCurrencyDTO(m *models.Currency) dto.CurrencyDTO {
	return dto.CurrencyDTO{
		ID:        m.ID,
		Code:      m.Code,
		Symbol:    m.Symbol,
		Name:      m.Name,
		CreatedAt: utils.FormatRFC3339(m.CreatedAt),
		UpdatedAt: utils.FormatRFC3339(m.UpdatedAt),
	}
}

func ToUnitDTO(m *models.Unit) dto.UnitDTO {
	return dto.UnitDTO{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: utils.FormatRFC3339(m.CreatedAt),
		UpdatedAt: utils.FormatRFC3339(m.UpdatedAt),
	}
}

func ToRoleDTO(m *models.Role) dto.RoleDTO {
	return dto.RoleDTO{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		CreatedAt: utils.FormatRFC3339(m.CreatedAt),
		UpdatedAt: utils.FormatRFC3339(m.UpdatedAt),
	}
}
