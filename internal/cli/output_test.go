package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONDoesNotEscapeHTML(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"value": "<a & b>"}))
	assert.Contains(t, buf.String(), "<a & b>")
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("E005", "String not found", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
	assert.Equal(t, "String not found", resp.Error.Message)
}

func TestOutputFormatter_YAMLSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "yaml", Writer: buf}

	data := map[string]any{"value": "true", "count": 2, "items": []string{"a", "b"}}
	require.NoError(t, formatter.Success(data))

	out := buf.String()
	assert.Contains(t, out, "status: ok\n")
	assert.Contains(t, out, "count: 2\n")
	assert.Contains(t, out, "- a\n")
	assert.NotContains(t, out, "{", "block style only")

	var decoded struct {
		Status string         `yaml:"status"`
		Data   map[string]any `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "ok", decoded.Status)
	assert.Equal(t, "true", decoded.Data["value"], "string that looks like a bool stays a string")
}

func TestOutputFormatter_YAMLError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "yaml", Writer: buf}

	require.NoError(t, formatter.Error("E004", "Unable to parse natural language query", nil))
	assert.Contains(t, buf.String(), "status: error\n")
	assert.Contains(t, buf.String(), "code: E004\n")
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("deleted \"racecar\"")
	require.NoError(t, err)
	assert.Equal(t, "deleted \"racecar\"\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("E003", "String already exists", "details hidden")
	require.NoError(t, err)
	assert.Equal(t, "Error [E003]: String already exists\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	err := formatter.Error("E006", "failed to open store", "permission denied")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E006]")
	assert.Contains(t, buf.String(), "Details: permission denied")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: errOut,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("opening %s", "vault.db")

			assert.Empty(t, out.String())
			if tt.wantLog {
				assert.Equal(t, "opening vault.db\n", errOut.String())
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestGetErrWriter_FallsBackToWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Writer: buf}
	assert.Same(t, buf, formatter.GetErrWriter())
}

func TestExitError(t *testing.T) {
	base := errors.New("boom")

	wrapped := WrapExitError(ExitCommandError, "failed to open store", base)
	assert.Equal(t, "failed to open store: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)

	plain := NewExitError(ExitFailure, "1 scenario(s) failed")
	assert.Equal(t, "1 scenario(s) failed", plain.Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "x"))))
}
