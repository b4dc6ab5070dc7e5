package businessflow

import (
	"strings"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/repository"
	"github.com/amirphl/Omoikane/utils"
)

type (
	ClientContactFlow      = CatalogFlow[dto.ClientContactPersonRequest, dto.ContactPersonDTO]
	VendorContactFlow      = CatalogFlow[dto.VendorContactPersonRequest, dto.ContactPersonDTO]
	EmailPaymentDetailFlow = CatalogFlow[dto.EmailPaymentDetailRequest, dto.EmailPaymentDetailDTO]
)

func NewClientContactFlow(repo repository.ClientContactPersonRepository) ClientContactFlow {
	return newCatalogFlow(catalogEntity[models.ClientContactPerson, models.ContactPersonFilter, dto.ClientContactPersonRequest, dto.ContactPersonDTO]{
		repo:    repo,
		code:    "CLIENT_CONTACT",
		label:   "client contact",
		orderBy: "full_name ASC",
		build: func(req *dto.ClientContactPersonRequest) *models.ClientContactPerson {
			m := &models.ClientContactPerson{}
			applyClientContact(m, req)
			return m
		},
		apply: applyClientContact,
		toDTO: func(m *models.ClientContactPerson) dto.ContactPersonDTO {
			return dto.ContactPersonDTO{
				ID:        m.ID,
				Company:   m.ClientName,
				FullName:  m.FullName,
				Email:     m.Email,
				Phone:     m.Phone,
				CreatedAt: utils.FormatRFC3339(m.CreatedAt),
				UpdatedAt: utils.FormatRFC3339(m.UpdatedAt),
			}
		},
		search: func(term string) models.ContactPersonFilter {
			return models.ContactPersonFilter{NameLike: optionalSearch(term)}
		},
	})
}

func applyClientContact(m *models.ClientContactPerson, req *dto.ClientContactPersonRequest) {
	m.ClientName = strings.TrimSpace(req.ClientName)
	m.FullName = strings.TrimSpace(req.FullName)
	m.Email = utils.NormalizeEmail(req.Email)
	m.Phone = req.Phone
}

func NewVendorContactFlow(repo repository.VendorContactPersonRepository) VendorContactFlow {
	return newCatalogFlow(catalogEntity[models.VendorContactPerson, models.ContactPersonFilter, dto.VendorContactPersonRequest, dto.ContactPersonDTO]{
		repo:    repo,
		code:    "VENDOR_CONTACT",
		label:   "vendor contact",
		orderBy: "full_name ASC",
		build: func(req *dto.VendorContactPersonRequest) *models.VendorContactPerson {
			m := &models.VendorContactPerson{}
			applyVendorContact(m, req)
			return m
		},
		apply: applyVendorContact,
		toDTO: func(m *models.VendorContactPerson) dto.ContactPersonDTO {
			return dto.ContactPersonDTO{
				ID:        m.ID,
				Company:   m.VendorName,
				FullName:  m.FullName,
				Email:     m.Email,
				Phone:     m.Phone,
				CreatedAt: utils.FormatRFC3339(m.CreatedAt),
				UpdatedAt: utils.FormatRFC3339(m.UpdatedAt),
			}
		},
		search: func(term string) models.ContactPersonFilter {
			return models.ContactPersonFilter{NameLike: optionalSearch(term)}
		},
	})
}

func applyVendorContact(m *models.VendorContactPerson, req *dto.VendorContactPersonRequest) {
	m.VendorName = strings.TrimSpace(req.VendorName)
	m.FullName = strings.TrimSpace(req.FullName)
	m.Email = utils.NormalizeEmail(req.Email)
	m.Phone = req.Phone
}

func NewEmailPaymentDetailFlow(repo repository.EmailPaymentDetailRepository) EmailPaymentDetailFlow {
	return newCatalogFlow(catalogEntity[models.EmailPaymentDetail, models.EmailPaymentDetailFilter, dto.EmailPaymentDetailRequest, dto.EmailPaymentDetailDTO]{
		repo:  repo,
		code:  "EMAIL_PAYMENT_DETAIL",
		label: "email payment detail",
		build: func(req *dto.EmailPaymentDetailRequest) *models.EmailPaymentDetail {
			return &models.EmailPaymentDetail{
				Email:             utils.NormalizeEmail(req.Email),
				AccountHolderName: strings.TrimSpace(req.AccountHolderName),
			}
		},
		apply: func(m *models.EmailPaymentDetail, req *dto.EmailPaymentDetailRequest) {
			m.Email = utils.NormalizeEmail(req.Email)
			m.AccountHolderName = strings.TrimSpace(req.AccountHolderName)
		},
		toDTO: ToEmailPaymentDetailDTO,
		search: func(term string) models.EmailPaymentDetailFilter {
			return models.EmailPaymentDetailFilter{Search: optionalSearch(term)}
		},
	})
}

func ToEmailPaymentDetailDTO(m *models.EmailPaymentDetail) dto.EmailPaymentDetailDTO {
	return dto.EmailPaymentDetailDTO{
		ID:                m.ID,
		Email:             m.Email,
		AccountHolderName: m.AccountHolderName,
		CreatedAt:         utils.FormatRFC3339(m.CreatedAt),
		UpdatedAt:         utils.FormatRFC3339(m.UpdatedAt),
	}
}
