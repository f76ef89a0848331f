// Package command runs external scanner binaries that report SARIF or JSON.
package command

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
	"github.com/secmon-lab/barrage/pkg/utils/safe"
)

// maxStderrLines bounds the stderr lines kept in a scan output.
const maxStderrLines = 20

type Scanner struct {
	name   string
	spec   Spec
	args   []string
	runner interfaces.CommandRunner
	now    func() time.Time
}

var _ interfaces.Scanner = (*Scanner)(nil)

type Option func(*Scanner)

// WithArgs appends extra arguments to the command.
func WithArgs(args []string) Option {
	return func(x *Scanner) {
		x.args = args
	}
}

func WithClock(now func() time.Time) Option {
	return func(x *Scanner) {
		x.now = now
	}
}

func New(name string, spec Spec, runner interfaces.CommandRunner, opts ...Option) (*Scanner, error) {
	if spec.Binary() == "" {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "command is required", goerr.V("scanner", name))
	}
	if spec.Format == "" {
		spec.Format = FormatSARIF
	}
	if spec.Format != FormatSARIF && spec.Format != FormatJSON {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "unsupported output format",
			goerr.V("scanner", name),
			goerr.V("format", spec.Format),
		)
	}
	if spec.Type == "" {
		spec.Type = types.ScannerTypeCustom
	}

	x := &Scanner{
		name:   name,
		spec:   spec,
		runner: runner,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x, nil
}

func (x *Scanner) Name() string { return x.name }

func (x *Scanner) Info() model.ScannerInfo {
	return model.ScannerInfo{Type: x.spec.Type}
}

// IsEnabled is always true. Command scanners are disabled through the configuration.
func (x *Scanner) IsEnabled() bool { return true }

func (x *Scanner) IsDependencySatisfied() bool {
	_, err := x.runner.LookPath(x.spec.Binary())
	return err == nil
}

func (x *Scanner) Scan(ctx context.Context, req *model.ScanRequest) (*model.ScanOutput, error) {
	outDir := req.OutputDir
	if outDir == "" {
		tmp, err := os.MkdirTemp("", "barrage-"+x.name+"-*")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create temporary directory")
		}
		defer safe.RemoveAll(tmp)
		outDir = tmp
	}
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return nil, goerr.Wrap(err, "failed to create scanner output directory", goerr.V("dir", outDir))
	}
	outPath := filepath.Join(outDir, "results."+string(x.spec.Format))

	args := x.buildArgs(req, outPath)
	output := &model.ScanOutput{StartedAt: x.now()}
	result, err := x.runner.Run(ctx, &interfaces.CommandInput{
		Name: x.spec.Binary(),
		Args: args,
		Dir:  req.Target,
	})
	output.EndedAt = x.now()
	if err != nil {
		return output, goerr.Wrap(err, "scanner command failed", goerr.V("scanner", x.name))
	}
	output.ExitCode = result.ExitCode
	output.Errors = stderrLines(result.Stderr)

	data, err := x.readResult(outPath, result.Stdout)
	if err != nil {
		return output, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if result.ExitCode != 0 {
			return output, goerr.New("scanner exited with error and no result",
				goerr.V("scanner", x.name),
				goerr.V("exit_code", result.ExitCode),
				goerr.V("stderr", output.Errors),
			)
		}
		logging.From(ctx).Debug("scanner produced no result", "scanner", x.name)
		return output, nil
	}

	payload, err := x.decode(data)
	if err != nil {
		return output, goerr.Wrap(err, "failed to decode scanner result",
			goerr.V("scanner", x.name),
			goerr.V("exit_code", result.ExitCode),
		)
	}
	output.Payload = payload
	return output, nil
}

func (x *Scanner) buildArgs(req *model.ScanRequest, outPath string) []string {
	replacer := strings.NewReplacer(PlaceholderTarget, req.Target, PlaceholderOutput, outPath)

	var args []string
	for _, arg := range x.spec.Command[1:] {
		args = append(args, replacer.Replace(arg))
	}
	if x.spec.ExcludeFlag != "" {
		for _, ignore := range req.IgnorePaths {
			args = append(args, x.spec.ExcludeFlag, ignore.Path)
		}
	}
	return append(args, x.args...)
}

func (x *Scanner) usesOutputFile() bool {
	for _, arg := range x.spec.Command[1:] {
		if strings.Contains(arg, PlaceholderOutput) {
			return true
		}
	}
	return false
}

func (x *Scanner) readResult(outPath string, stdout []byte) ([]byte, error) {
	if !x.usesOutputFile() {
		return stdout, nil
	}
	data, err := os.ReadFile(filepath.Clean(outPath))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read scanner result", goerr.V("path", outPath))
	}
	return data, nil
}

func (x *Scanner) decode(data []byte) (model.Payload, error) {
	if x.spec.Format == FormatSARIF {
		log, err := sarif.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return &model.FindingSetPayload{Log: log}, nil
	}

	var doc any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, goerr.Wrap(err, "invalid JSON")
	}
	switch v := doc.(type) {
	case map[string]any:
		return model.OpaquePayload(v), nil
	case []any:
		return model.OpaquePayload{"findings": v}, nil
	default:
		return nil, goerr.New("JSON result must be an object or an array")
	}
}

func stderrLines(stderr []byte) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(string(stderr)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > maxStderrLines {
		lines = lines[len(lines)-maxStderrLines:]
	}
	return lines
}
