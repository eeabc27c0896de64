package catalog

import (
	"context"

	vo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
)

// PackageListFilter narrows ListActive results. Nil fields are ignored.
type PackageListFilter struct {
	PackageType *vo.PackageType
	IsFeatured  *bool
}

// PackageRepository persists Package aggregates. Lookups return (nil, nil)
// when the row does not exist.
type PackageRepository interface {
	Create(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, id uint) (*Package, error)
	// ListActive returns active packages ordered by ascending monthly price.
	ListActive(ctx context.Context, filter PackageListFilter) ([]*Package, error)
	Update(ctx context.Context, pkg *Package) error
	CountActive(ctx context.Context) (int64, error)
}

// AddOnRepository persists AddOn aggregates.
type AddOnRepository interface {
	Create(ctx context.Context, addOn *AddOn) error
	GetByID(ctx context.Context, id uint) (*AddOn, error)
	ListActive(ctx context.Context) ([]*AddOn, error)
	Update(ctx context.Context, addOn *AddOn) error
}
