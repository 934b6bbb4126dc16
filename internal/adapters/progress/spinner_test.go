package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestSpinnerSink_NonInteractive(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	sink := NewSpinnerSink(&buf, false)
	ctx := context.Background()

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageDeployNFT, Current: 1, Total: 3, Message: "Deploying OmamoriNFT", Spinner: true})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageDeployVault, Current: 2, Total: 3, Message: "Deploying OmamoriVault", Spinner: true})
	sink.Info("simulated run")
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageComplete, Current: 3, Total: 3, Message: "Deployment complete"})

	out := buf.String()
	assert.Contains(t, out, "[1/3] Deploying OmamoriNFT\n")
	assert.Contains(t, out, "[2/3] Deploying OmamoriVault\n")
	assert.Contains(t, out, "simulated run")
	assert.Contains(t, out, "✓ Deployment complete in ")
	assert.NotContains(t, out, "[3/3]")
}

func TestNopSink(t *testing.T) {
	sink := NewNopSink()
	sink.OnProgress(context.Background(), usecase.ProgressEvent{Message: "ignored"})
	sink.Info("ignored")
	sink.Error("ignored")
	sink.Stop()
}

func TestSpinnerSink_StopAfterFailure(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	sink := NewSpinnerSink(&buf, true)

	sink.OnProgress(context.Background(), usecase.ProgressEvent{Stage: usecase.StageDeployNFT, Current: 1, Total: 3, Message: "Deploying OmamoriNFT", Spinner: true})
	sink.Stop()
	sink.Stop()

	// messages after Stop print without restarting a spinner
	sink.Error("deploy failed")
	assert.Contains(t, buf.String(), "deploy failed")
}
