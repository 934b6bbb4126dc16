package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/omamori-labs/omamori/pkg/format"
	"github.com/samber/lo"
)

// DeploymentRenderer renders deployment records
type DeploymentRenderer struct {
	out    io.Writer
	format OutputFormat
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, format OutputFormat) *DeploymentRenderer {
	return &DeploymentRenderer{
		out:    out,
		format: format,
	}
}

// RenderDeployResult renders the outcome of a deploy run
func (r *DeploymentRenderer) RenderDeployResult(result *usecase.DeployResult) error {
	if r.format != OutputTable {
		return encode(r.out, r.format, result.Record)
	}

	fmt.Fprintln(r.out)
	if result.Record.Simulated {
		simulatedStyle.Fprintln(r.out, "Simulated deployment: no transactions were sent")
	}
	r.renderRecord(result.Record)
	fmt.Fprintln(r.out)

	if result.Verified {
		fmt.Fprintln(r.out, FormatSuccess("Code verified at every address"))
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployment record written to %s", result.Path)))
	return nil
}

// Render renders a stored record
func (r *DeploymentRenderer) Render(result *usecase.ShowDeploymentResult) error {
	if r.format != OutputTable {
		return encode(r.out, r.format, result.Record)
	}

	headerStyle.Fprintf(r.out, "Deployment record %s (profile %s)\n\n", result.Path, result.Profile.Name)
	r.renderRecord(result.Record)
	return nil
}

func (r *DeploymentRenderer) renderRecord(record *models.DeploymentRecord) {
	info := newTable()
	info.AppendRow(table.Row{labelStyle.Sprint("Network"), fmt.Sprintf("%s (chain %d)", record.Network, record.ChainID)})
	if record.Profile != "" {
		info.AppendRow(table.Row{labelStyle.Sprint("Profile"), record.Profile})
	}
	if record.Deployer != "" {
		info.AppendRow(table.Row{labelStyle.Sprint("Deployer"), addressStyle.Sprint(record.Deployer)})
	}
	if !record.Timestamp.IsZero() {
		info.AppendRow(table.Row{labelStyle.Sprint("Timestamp"), format.Timestamp(record.Timestamp)})
	}
	if record.Simulated {
		info.AppendRow(table.Row{labelStyle.Sprint("Mode"), simulatedStyle.Sprint("simulated")})
	}
	fmt.Fprintln(r.out, info.Render())
	fmt.Fprintln(r.out)

	contracts := newTable()
	contracts.AppendHeader(table.Row{"CONTRACT", "ADDRESS", "TX"})
	for _, name := range sortedContractNames(record.Contracts) {
		tx := record.Transactions[name]
		if tx != "" {
			tx = format.ShortenAddress(tx)
		}
		contracts.AppendRow(table.Row{
			nameStyle.Sprint(name),
			addressStyle.Sprint(record.Contracts[name]),
			labelStyle.Sprint(tx),
		})
	}
	fmt.Fprintln(r.out, contracts.Render())
}

// sortedContractNames lists the NFT and the vault first, then any others by name
func sortedContractNames(contracts map[string]string) []string {
	known := []string{models.ContractNFT, models.ContractVault}
	names := lo.Filter(known, func(name string, _ int) bool {
		_, ok := contracts[name]
		return ok
	})

	rest := lo.Without(lo.Keys(contracts), known...)
	sort.Strings(rest)
	return append(names, rest...)
}
