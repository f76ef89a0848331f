package command_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/mock"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/plugin"
	"github.com/secmon-lab/barrage/pkg/scanner/command"
)

const sarifLog = `{
  "version": "2.1.0",
  "runs": [{
    "tool": {"driver": {"name": "semgrep"}},
    "results": [
      {"ruleId": "python.lang.security.eval", "level": "error", "message": {"text": "eval"},
       "locations": [{"physicalLocation": {"artifactLocation": {"uri": "app.py"}, "region": {"startLine": 3}}}]}
    ]
  }]
}`

// argAfter returns the argument that follows flag.
func argAfter(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

func TestScanSARIF(t *testing.T) {
	target := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "scanners", "semgrep", "source")

	runner := &mock.CommandRunnerMock{
		RunFunc: func(ctx context.Context, input *interfaces.CommandInput) (*interfaces.CommandOutput, error) {
			out := argAfter(input.Args, "--output")
			if err := os.WriteFile(out, []byte(sarifLog), 0600); err != nil {
				return nil, err
			}
			return &interfaces.CommandOutput{ExitCode: 0, Stderr: []byte("scanning\n\n  done  \n")}, nil
		},
	}

	scanner := gt.R1(command.New("semgrep", command.Presets["semgrep"], runner,
		command.WithArgs([]string{"--config", "p/ci"}),
	)).NoError(t)
	gt.V(t, scanner.Info().Type).Equal(types.ScannerTypeSAST)
	gt.False(t, scanner.Info().Native)

	output := gt.R1(scanner.Scan(context.Background(), &model.ScanRequest{
		Target:      target,
		Kind:        types.TargetKindSource,
		OutputDir:   outDir,
		IgnorePaths: []model.IgnorePath{{Path: "vendor", Reason: "third party"}},
	})).NoError(t)

	calls := runner.RunCalls()
	gt.V(t, len(calls)).Equal(1)
	input := calls[0].Input
	gt.V(t, input.Name).Equal("semgrep")
	gt.V(t, input.Dir).Equal(target)
	gt.V(t, argAfter(input.Args, "--output")).Equal(filepath.Join(outDir, "results.sarif"))
	gt.V(t, argAfter(input.Args, "--exclude")).Equal("vendor")
	gt.V(t, argAfter(input.Args, "--config")).Equal("p/ci")
	gt.True(t, slices.Contains(input.Args, target))

	payload, ok := output.Payload.(*model.FindingSetPayload)
	gt.True(t, ok)
	gt.V(t, len(payload.Log.Runs[0].Results)).Equal(1)
	gt.V(t, output.Errors).Equal([]string{"scanning", "done"})
	gt.False(t, output.StartedAt.IsZero())
}

func TestScanJSONStdout(t *testing.T) {
	runner := &mock.CommandRunnerMock{
		RunFunc: func(ctx context.Context, input *interfaces.CommandInput) (*interfaces.CommandOutput, error) {
			return &interfaces.CommandOutput{
				ExitCode: 1,
				Stdout:   []byte(`[{"severity": "high"}, {"severity": "low"}]`),
			}, nil
		},
	}
	spec := command.Spec{Format: command.FormatJSON, Command: []string{"custom-lint", "--json", command.PlaceholderTarget}}
	scanner := gt.R1(command.New("custom-lint", spec, runner)).NoError(t)
	gt.V(t, scanner.Info().Type).Equal(types.ScannerTypeCustom)

	target := t.TempDir()
	output := gt.R1(scanner.Scan(context.Background(), &model.ScanRequest{Target: target})).NoError(t)
	gt.V(t, output.ExitCode).Equal(1)
	gt.V(t, runner.RunCalls()[0].Input.Args).Equal([]string{"--json", target})

	payload, ok := output.Payload.(model.OpaquePayload)
	gt.True(t, ok)
	findings, ok := payload["findings"].([]any)
	gt.True(t, ok)
	gt.V(t, len(findings)).Equal(2)
}

func TestScanFailures(t *testing.T) {
	spec := command.Spec{Format: command.FormatSARIF, Command: []string{"tool", command.PlaceholderTarget}}

	t.Run("error exit without result", func(t *testing.T) {
		runner := &mock.CommandRunnerMock{
			RunFunc: func(ctx context.Context, input *interfaces.CommandInput) (*interfaces.CommandOutput, error) {
				return &interfaces.CommandOutput{ExitCode: 2, Stderr: []byte("fatal: bad flag")}, nil
			},
		}
		scanner := gt.R1(command.New("tool", spec, runner)).NoError(t)
		output, err := scanner.Scan(context.Background(), &model.ScanRequest{Target: t.TempDir()})
		gt.Error(t, err)
		gt.V(t, output.ExitCode).Equal(2)
	})

	t.Run("clean exit without result", func(t *testing.T) {
		runner := &mock.CommandRunnerMock{
			RunFunc: func(ctx context.Context, input *interfaces.CommandInput) (*interfaces.CommandOutput, error) {
				return &interfaces.CommandOutput{}, nil
			},
		}
		scanner := gt.R1(command.New("tool", spec, runner)).NoError(t)
		output := gt.R1(scanner.Scan(context.Background(), &model.ScanRequest{Target: t.TempDir()})).NoError(t)
		gt.V(t, output.Payload).Equal(nil)
	})

	t.Run("broken SARIF", func(t *testing.T) {
		runner := &mock.CommandRunnerMock{
			RunFunc: func(ctx context.Context, input *interfaces.CommandInput) (*interfaces.CommandOutput, error) {
				return &interfaces.CommandOutput{Stdout: []byte(`{"runs": "nope"}`)}, nil
			},
		}
		scanner := gt.R1(command.New("tool", spec, runner)).NoError(t)
		_, err := scanner.Scan(context.Background(), &model.ScanRequest{Target: t.TempDir()})
		gt.Error(t, err)
	})

	t.Run("runner error", func(t *testing.T) {
		runner := &mock.CommandRunnerMock{
			RunFunc: func(ctx context.Context, input *interfaces.CommandInput) (*interfaces.CommandOutput, error) {
				return nil, errors.New("exec format error")
			},
		}
		scanner := gt.R1(command.New("tool", spec, runner)).NoError(t)
		_, err := scanner.Scan(context.Background(), &model.ScanRequest{Target: t.TempDir()})
		gt.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	runner := &mock.CommandRunnerMock{}

	_, err := command.New("empty", command.Spec{}, runner)
	gt.True(t, errors.Is(err, types.ErrInvalidConfig))

	_, err = command.New("xml", command.Spec{Command: []string{"x"}, Format: "xml"}, runner)
	gt.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestIsDependencySatisfied(t *testing.T) {
	runner := &mock.CommandRunnerMock{
		LookPathFunc: func(name string) (string, error) {
			if name == "gitleaks" {
				return "/usr/bin/gitleaks", nil
			}
			return "", errors.New("not found")
		},
	}

	gitleaks := gt.R1(command.New("gitleaks", command.Presets["gitleaks"], runner)).NoError(t)
	gt.True(t, gitleaks.IsDependencySatisfied())

	trivy := gt.R1(command.New("trivy", command.Presets["trivy"], runner)).NoError(t)
	gt.False(t, trivy.IsDependencySatisfied())
}

func TestRegister(t *testing.T) {
	runner := &mock.CommandRunnerMock{}
	reg := plugin.New()
	cfg := &model.ScanConfig{
		Scanners: map[string]model.ScannerConfig{
			"custom-lint": {Type: command.TypeCommand, Command: []string{"custom-lint", "{target}"}, Format: "json"},
			"semgrep":     {Options: model.ScannerOptions{Args: []string{"--config", "auto"}}},
			"bandit":      {Enabled: nil},
		},
	}
	gt.NoError(t, command.Register(reg, runner, cfg))
	gt.V(t, reg.ScannerNames()).Equal([]string{"custom-lint", "gitleaks", "semgrep", "trivy"})

	custom := gt.R1(reg.NewScanner("custom-lint", cfg.Scanners["custom-lint"])).NoError(t)
	gt.V(t, custom.Info().Type).Equal(types.ScannerTypeCustom)

	t.Run("custom scanner requires a command", func(t *testing.T) {
		_, err := reg.NewScanner("custom-lint", model.ScannerConfig{Type: command.TypeCommand})
		gt.True(t, errors.Is(err, types.ErrInvalidConfig))
	})

	t.Run("config overrides preset command", func(t *testing.T) {
		scanner := gt.R1(reg.NewScanner("trivy", model.ScannerConfig{
			Command:     []string{"/opt/trivy", "fs", "--format", "sarif", "{target}"},
			ScannerType: "IAC",
		})).NoError(t)
		gt.V(t, scanner.Info().Type).Equal(types.ScannerTypeIaC)
	})
}
