package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/omamori-labs/omamori/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the list of configured networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in omamori.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable()
	for _, network := range result.Networks {
		if network.Error != nil {
			t.AppendRow(table.Row{"  ❌", network.Name, failStyle.Sprintf("Error: %v", network.Error)})
			continue
		}
		t.AppendRow(table.Row{"  ✅", network.Name, fmt.Sprintf("Chain ID: %d", network.ChainID), labelStyle.Sprint(network.RPCURL)})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
