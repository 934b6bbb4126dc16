package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/samber/lo"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// Render renders the on-chain check of every recorded contract
func (r *VerifyRenderer) Render(result *usecase.VerifyDeploymentResult) error {
	headerStyle.Fprintf(r.out, "Verifying %s on %s (chain %d)\n\n", result.Path, result.Network, result.ChainID)

	t := newTable()
	for _, check := range result.Checks {
		status := okStyle.Sprint("✓ code found")
		switch {
		case result.Simulated:
			status = simulatedStyle.Sprint("⊘ " + check.Reason)
		case !check.Exists:
			status = failStyle.Sprint("✗ " + check.Reason)
		}
		t.AppendRow(table.Row{nameStyle.Sprint(check.Name), addressStyle.Sprint(check.Address), status})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	missing := lo.CountBy(result.Checks, func(c usecase.ContractCheck) bool { return !c.Exists })
	switch {
	case result.Simulated:
		fmt.Fprintln(r.out, FormatWarning("Simulated deployments have nothing to verify on-chain"))
	case missing == 0:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("All %d contracts have code on-chain", len(result.Checks))))
	default:
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%d of %d contracts have no code on-chain", missing, len(result.Checks))))
	}
	return nil
}
