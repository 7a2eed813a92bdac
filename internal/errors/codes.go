package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK              Code = "OK"
	CodeInput           Code = "INPUT"
	CodeTemplate        Code = "TEMPLATE"
	CodeOutput          Code = "OUTPUT"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeAlreadyExists   Code = "ALREADY_EXISTS"
	CodeInternal        Code = "INTERNAL"
)

// Exit statuses follow the BSD sysexits convention
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 64
	ExitDataErr    = 65
	ExitNoInput    = 66
	ExitSoftware   = 70
	ExitCantCreate = 73
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitCode returns the process exit status for the code
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return ExitOK
	case CodeInput:
		return ExitNoInput
	case CodeTemplate:
		return ExitDataErr
	case CodeOutput:
		return ExitCantCreate
	case CodeInvalidArgument, CodeNotFound:
		return ExitUsage
	case CodeAlreadyExists:
		return ExitSoftware
	default:
		return ExitFailure
	}
}
