package usecase

import (
	"context"

	internalconfig "github.com/omamori-labs/omamori/internal/config"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
)

// ShowDeploymentResult is a deployment record with where it came from
type ShowDeploymentResult struct {
	Profile config.Profile
	Path    string
	Record  *models.DeploymentRecord
}

// ShowDeployment is the use case for reading a profile's deployment record
type ShowDeployment struct {
	config *config.RuntimeConfig
	store  DeploymentRecordStore
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, store DeploymentRecordStore) *ShowDeployment {
	return &ShowDeployment{
		config: cfg,
		store:  store,
	}
}

// Run loads the deployment record of a profile
func (uc *ShowDeployment) Run(ctx context.Context, profileName string) (*ShowDeploymentResult, error) {
	profile, err := internalconfig.ResolveProfile(uc.config.OmamoriConfig, profileName)
	if err != nil {
		return nil, err
	}

	path := RecordPath(uc.config, profile)
	record, err := uc.store.LoadRecord(ctx, path)
	if err != nil {
		return nil, err
	}

	return &ShowDeploymentResult{
		Profile: profile,
		Path:    path,
		Record:  record,
	}, nil
}
