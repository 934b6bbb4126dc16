package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	internalconfig "github.com/omamori-labs/omamori/internal/config"
	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
)

// Deployment pipeline stages
const (
	StageDeployNFT         = "deploy-nft"
	StageDeployVault       = "deploy-vault"
	StageTransferOwnership = "transfer-ownership"
	StageVerify            = "verify"
	StageWriteRecord       = "write-record"
	StageComplete          = "complete"
)

// DeployContractsParams contains parameters for a deployment run
type DeployContractsParams struct {
	Profile string
}

// DeployResult is the outcome of a deployment run
type DeployResult struct {
	Profile  config.Profile
	Path     string
	Record   *models.DeploymentRecord
	Verified bool
}

// DeployContracts deploys the NFT and the vault, optionally hands NFT
// ownership to the vault, and writes the deployment record
type DeployContracts struct {
	config   *config.RuntimeConfig
	deployer ContractDeployer
	checker  BlockchainChecker
	store    DeploymentRecordStore
	clock    Clock
	sink     ProgressSink
	log      *slog.Logger
}

// NewDeployContracts creates a new DeployContracts use case
func NewDeployContracts(
	cfg *config.RuntimeConfig,
	deployer ContractDeployer,
	checker BlockchainChecker,
	store DeploymentRecordStore,
	clock Clock,
	sink ProgressSink,
	log *slog.Logger,
) *DeployContracts {
	return &DeployContracts{
		config:   cfg,
		deployer: deployer,
		checker:  checker,
		store:    store,
		clock:    clock,
		sink:     sink,
		log:      log,
	}
}

// Run executes the deployment pipeline
func (uc *DeployContracts) Run(ctx context.Context, params DeployContractsParams) (*DeployResult, error) {
	defer uc.deployer.Close()
	defer uc.sink.Stop()

	profile, err := internalconfig.ResolveProfile(uc.config.OmamoriConfig, params.Profile)
	if err != nil {
		return nil, err
	}

	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("%w: use --network", domain.ErrNoNetwork)
	}

	token, err := ResolveVaultToken(uc.config.OmamoriConfig)
	if err != nil {
		return nil, err
	}

	total := 3
	if profile.TransferOwnership {
		total++
	}
	verify := profile.Verify && !uc.deployer.Simulated()
	if verify {
		total++
	}
	step := 0
	progress := func(stage, message string) {
		step++
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   stage,
			Current: step,
			Total:   total,
			Message: message,
			Spinner: true,
		})
	}

	uc.log.Info("starting deployment",
		"profile", profile.Name,
		"network", network.Name,
		"chainId", network.ChainID,
		"simulated", uc.deployer.Simulated(),
	)

	record := &models.DeploymentRecord{
		Network:      network.Name,
		ChainID:      network.ChainID,
		Contracts:    make(map[string]string),
		Profile:      profile.Name,
		Simulated:    uc.deployer.Simulated(),
		Transactions: make(map[string]string),
	}
	if deployer := uc.deployer.Deployer(); deployer != (common.Address{}) {
		record.Deployer = deployer.Hex()
	}

	contracts := uc.config.OmamoriConfig.Contracts

	// NFT
	progress(StageDeployNFT, "Deploying "+models.ContractNFT)
	nft, err := uc.deployer.Deploy(ctx, models.ContractSpec{
		Name: models.ContractNFT,
		Args: []any{contracts.NFTName, contracts.NFTSymbol, contracts.NFTBaseURI},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", models.ContractNFT, err)
	}
	uc.recordContract(record, nft)

	// Vault
	progress(StageDeployVault, "Deploying "+models.ContractVault)
	vault, err := uc.deployer.Deploy(ctx, models.ContractSpec{
		Name: models.ContractVault,
		Args: []any{token, common.HexToAddress(nft.Address)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", models.ContractVault, err)
	}
	uc.recordContract(record, vault)

	if profile.TransferOwnership {
		progress(StageTransferOwnership, "Transferring NFT ownership to vault")
		txHash, err := uc.deployer.Transact(ctx, models.ContractNFT,
			common.HexToAddress(nft.Address), "transferOwnership", common.HexToAddress(vault.Address))
		if err != nil {
			return nil, fmt.Errorf("failed to transfer NFT ownership: %w", err)
		}
		if txHash != "" {
			record.Transactions[StageTransferOwnership] = txHash
		}
		uc.log.Info("transferred ownership", "nft", nft.Address, "owner", vault.Address)
	}

	if verify {
		progress(StageVerify, "Verifying deployed code")
		if err := uc.verify(ctx, network, record); err != nil {
			return nil, err
		}
	}

	progress(StageWriteRecord, "Writing deployment record")
	record.Timestamp = uc.clock.Now().UTC()
	if len(record.Transactions) == 0 {
		record.Transactions = nil
	}

	path := RecordPath(uc.config, profile)
	if err := uc.store.SaveRecord(ctx, path, record); err != nil {
		return nil, fmt.Errorf("failed to write deployment record: %w", err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageComplete,
		Current: total,
		Total:   total,
		Message: "Deployment complete",
	})
	uc.log.Info("deployment record written", "path", path)

	return &DeployResult{
		Profile:  profile,
		Path:     path,
		Record:   record,
		Verified: verify,
	}, nil
}

func (uc *DeployContracts) recordContract(record *models.DeploymentRecord, c *models.DeployedContract) {
	record.Contracts[c.Name] = common.HexToAddress(c.Address).Hex()
	if c.TxHash != "" {
		record.Transactions[c.Name] = c.TxHash
	}
	uc.log.Info("deployed contract", "contract", c.Name, "address", c.Address)
}

func (uc *DeployContracts) verify(ctx context.Context, network *config.Network, record *models.DeploymentRecord) error {
	if err := uc.checker.Connect(ctx, network.RPCURL, network.ChainID); err != nil {
		return err
	}
	defer uc.checker.Close()

	for _, name := range []string{models.ContractNFT, models.ContractVault} {
		addr := record.Contracts[name]
		exists, reason, err := uc.checker.CheckDeploymentExists(ctx, addr)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s at %s: %s", domain.ErrVerificationFailed, name, addr, reason)
		}
	}
	return nil
}

// RecordPath returns where a profile's deployment record lives
func RecordPath(cfg *config.RuntimeConfig, profile config.Profile) string {
	if filepath.IsAbs(profile.Output) {
		return profile.Output
	}
	return filepath.Join(cfg.ProjectRoot, profile.Output)
}

// ResolveVaultToken resolves the vault's token from [contracts].vault_token,
// either a key into [tokens] or a literal address
func ResolveVaultToken(cfg *config.OmamoriConfig) (common.Address, error) {
	ref := cfg.Contracts.VaultToken

	value := ref
	if addr, ok := cfg.Tokens[ref]; ok {
		value = addr
	} else if !common.IsHexAddress(ref) {
		return common.Address{}, fmt.Errorf("%w: set %s or [tokens].%s",
			domain.ErrMissingToken, internalconfig.GenerateTokenEnvVarName(ref), ref)
	}

	if value == "" {
		return common.Address{}, fmt.Errorf("%w: set %s", domain.ErrMissingToken, internalconfig.GenerateTokenEnvVarName(ref))
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: token %s = %q", domain.ErrInvalidAddress, ref, value)
	}
	return common.HexToAddress(value), nil
}
