package cli

import (
	"errors"

	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/nlquery"
	"github.com/roach88/stringvault/internal/record"
	"github.com/roach88/stringvault/internal/service"
)

// Error codes reported in CLIError.Code.
const (
	CodeInternal     = "E001"
	CodeInvalidInput = "E002"
	CodeDuplicate    = "E003"
	CodeUnparsable   = "E004"
	CodeNotFound     = "E005"
	CodeStoreOpen    = "E006"
	CodeConfig       = "E007"
)

// classifyError maps a service error to its CLI code, exit code and message.
func classifyError(err error) (code string, exit int, message string) {
	var ve *filter.ValidationError
	switch {
	case errors.Is(err, service.ErrEmptyValue):
		return CodeInvalidInput, ExitCommandError, "Missing or empty value"
	case errors.As(err, &ve):
		return CodeInvalidInput, ExitCommandError, ve.Error()
	case record.IsDuplicate(err):
		return CodeDuplicate, ExitFailure, "String already exists"
	case record.IsNotFound(err):
		return CodeNotFound, ExitFailure, "String not found"
	case errors.Is(err, nlquery.ErrUnparsableQuery):
		return CodeUnparsable, ExitFailure, "Unable to parse natural language query"
	default:
		return CodeInternal, ExitFailure, err.Error()
	}
}

// reportError writes err through the formatter and returns the ExitError the
// command should fail with.
func reportError(f *OutputFormatter, err error) error {
	code, exit, message := classifyError(err)
	_ = f.Error(code, message, nil)
	return WrapExitError(exit, code+": "+message, err)
}

// reportCommandError reports a setup failure (config, store) with its own code.
func reportCommandError(f *OutputFormatter, code, message string, err error) error {
	_ = f.Error(code, message, err.Error())
	return WrapExitError(ExitCommandError, code+": "+message, err)
}
