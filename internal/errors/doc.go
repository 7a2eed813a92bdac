// Package errors provides coded errors for sheetgen.
//
// Every failure that reaches the command line carries a Code, and each Code
// maps to a process exit status through Code.ExitCode.
//
// # Codes
//
//   - INPUT: the template source could not be read
//   - TEMPLATE: the template engine rejected or failed to execute the template
//   - OUTPUT: the rendered text could not be written
//   - INVALID_ARGUMENT: bad flags, config or throw definitions
//   - NOT_FOUND: no throw with the requested name
//   - ALREADY_EXISTS: two throws share a name
//   - INTERNAL: anything else
//
// # Usage
//
//	data, err := os.ReadFile(path)
//	if err != nil {
//	    return errors.WrapWithCodef(err, errors.CodeInput, "failed to read template %s", path).
//	        WithMeta("path", path)
//	}
//
// Wrap keeps the code of an existing *Error and defaults to INTERNAL for
// foreign errors:
//
//	if err := o.render(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to render sheet")
//	}
//
// Checking:
//
//	if errors.IsTemplate(err) {
//	    // report line and column from errors.GetMeta(err)
//	}
//	os.Exit(errors.ExitCode(err))
//
// Config and constructor validation use the ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", name, vb)
//	errors.ValidateEnum("log_level", level, levels, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
