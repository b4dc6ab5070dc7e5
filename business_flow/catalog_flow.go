package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/repository"
)

// CatalogFlow is the CRUD surface shared by the admin lookup tables.
// R is the request payload and D the response representation.
type CatalogFlow[R any, D any] interface {
	Create(ctx context.Context, req *R) (*D, error)
	Get(ctx context.Context, id uint) (*D, error)
	List(ctx context.Context, req *dto.ListRequest) (*dto.ListResponse[D], error)
	Update(ctx context.Context, id uint, req *R) (*D, error)
	Delete(ctx context.Context, id uint) error
}

// catalogEntity describes how one table maps onto CatalogFlow
type catalogEntity[M any, F any, R any, D any] struct {
	repo repository.Repository[M, F]
	// code prefixes business error codes, e.g. SERVICE gives SERVICE_NOT_FOUND
	code string
	// label names the entity in messages
	label string
	// orderBy is the list ordering
	orderBy string
	build   func(req *R) *M
	apply   func(m *M, req *R)
	toDTO   func(m *M) D
	search  func(term string) F
}

// CatalogFlowImpl implements CatalogFlow on top of a generic repository
type CatalogFlowImpl[M any, F any, R any, D any] struct {
	repo   repository.Repository[M, F]
	entity catalogEntity[M, F, R, D]
}

func newCatalogFlow[M any, F any, R any, D any](entity catalogEntity[M, F, R, D]) *CatalogFlowImpl[M, F, R, D] {
	if entity.orderBy == "" {
		entity.orderBy = "id ASC"
	}
	return &CatalogFlowImpl[M, F, R, D]{repo: entity.repo, entity: entity}
}

func (f *CatalogFlowImpl[M, F, R, D]) Create(ctx context.Context, req *R) (*D, error) {
	m := f.entity.build(req)
	if err := f.repo.Save(ctx, m); err != nil {
		return nil, f.writeError(err, "create")
	}
	out := f.entity.toDTO(m)
	return &out, nil
}

func (f *CatalogFlowImpl[M, F, R, D]) Get(ctx context.Context, id uint) (*D, error) {
	m, err := f.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := f.entity.toDTO(m)
	return &out, nil
}

func (f *CatalogFlowImpl[M, F, R, D]) List(ctx context.Context, req *dto.ListRequest) (*dto.ListResponse[D], error) {
	p, err := normalizePage(req)
	if err != nil {
		return nil, err
	}

	var term string
	if req != nil {
		term = strings.TrimSpace(req.Search)
	}
	filter := f.entity.search(term)

	total, err := f.repo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessErrorf(f.entity.code+"_LIST_FAILED", "Failed to list %ss", err, f.entity.label)
	}

	rows, err := f.repo.ByFilter(ctx, filter, f.entity.orderBy, p.size, p.offset())
	if err != nil {
		return nil, NewBusinessErrorf(f.entity.code+"_LIST_FAILED", "Failed to list %ss", err, f.entity.label)
	}

	items := make([]D, 0, len(rows))
	for _, m := range rows {
		items = append(items, f.entity.toDTO(m))
	}

	return &dto.ListResponse[D]{
		Items:      items,
		Pagination: paginationInfo(p, total),
	}, nil
}

func (f *CatalogFlowImpl[M, F, R, D]) Update(ctx context.Context, id uint, req *R) (*D, error) {
	m, err := f.find(ctx, id)
	if err != nil {
		return nil, err
	}

	f.entity.apply(m, req)
	if err := f.repo.Update(ctx, m); err != nil {
		return nil, f.writeError(err, "update")
	}

	out := f.entity.toDTO(m)
	return &out, nil
}

func (f *CatalogFlowImpl[M, F, R, D]) Delete(ctx context.Context, id uint) error {
	deleted, err := f.repo.Delete(ctx, id)
	if err != nil {
		return f.writeError(err, "delete")
	}
	if !deleted {
		return f.notFound(id)
	}
	return nil
}

func (f *CatalogFlowImpl[M, F, R, D]) find(ctx context.Context, id uint) (*M, error) {
	m, err := f.repo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessErrorf(f.entity.code+"_LOOKUP_FAILED", "Failed to lookup %s", err, f.entity.label)
	}
	if m == nil {
		return nil, f.notFound(id)
	}
	return m, nil
}

func (f *CatalogFlowImpl[M, F, R, D]) notFound(id uint) error {
	return NewBusinessErrorf(f.entity.code+"_NOT_FOUND", "%s %d not found", ErrNotFound, capitalize(f.entity.label), id)
}

// writeError maps constraint violations onto 409-style business errors
func (f *CatalogFlowImpl[M, F, R, D]) writeError(err error, op string) error {
	switch {
	case repository.IsDuplicateKey(err):
		return NewBusinessErrorf(f.entity.code+"_EXISTS", "%s already exists", ErrAlreadyExists, capitalize(f.entity.label))
	case repository.IsForeignKeyViolation(err):
		return NewBusinessErrorf(f.entity.code+"_IN_USE", "%s is still in use", ErrInUse, capitalize(f.entity.label))
	default:
		return NewBusinessErrorf(f.entity.code+"_"+strings.ToUpper(op)+"_FAILED", "Failed to %s %s", err, op, f.entity.label)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// optionalSearch returns nil for an empty search term
func optionalSearch(term string) *string {
	if term == "" {
		return nil
	}
	return &term
}
