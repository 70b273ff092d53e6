package adapters

import (
	"context"

	appsvc "railspace_backend/internal/applications/service"
	"railspace_backend/internal/assets/domain"
	assetsvc "railspace_backend/internal/assets/service"
)

// ApplicationAssetCatalog adapts the asset service for application intake.
type ApplicationAssetCatalog struct {
	assets *assetsvc.Service
}

func NewApplicationAssetCatalog(assets *assetsvc.Service) *ApplicationAssetCatalog {
	return &ApplicationAssetCatalog{assets: assets}
}

func (a *ApplicationAssetCatalog) Lookup(ctx context.Context, assetID string) (appsvc.AssetInfo, error) {
	asset, err := a.assets.Get(ctx, assetID)
	if err != nil {
		return appsvc.AssetInfo{}, err
	}
	return appsvc.AssetInfo{
		ID:        asset.ID,
		Name:      asset.Name,
		Category:  asset.Category,
		Rent:      asset.Rent,
		Available: asset.IsAvailable(),
	}, nil
}

func (a *ApplicationAssetCatalog) MarkLeased(ctx context.Context, assetID string) error {
	return a.assets.SetStatus(ctx, assetID, domain.StatusLeased)
}

var _ appsvc.AssetCatalog = (*ApplicationAssetCatalog)(nil)
