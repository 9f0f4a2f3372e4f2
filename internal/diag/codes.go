package diag

import "fmt"

// Code identifies the category and exact reason for a diagnostic. Ranges are
// grouped by the pipeline stage that raises them; external stages (lexer,
// parser) mint their own codes and are only forwarded here.
type Code uint16

const (
	UnknownCode Code = 0

	// External stage passthrough (lexer/parser diagnostics forwarded as-is).
	ExternalSyntax Code = 500

	// Name resolution, 1000-1099.
	NameNotFound    Code = 1000
	NamePrivate     Code = 1001
	NameSuperOnRoot Code = 1002
	NameDuplicate   Code = 1003
	NameNotAModule  Code = 1004
	NameNotAType    Code = 1005
	NameCycle       Code = 1010

	// Pattern / unpack binding, 1100-1199.
	UnpackNotTuple      Code = 1100
	UnpackTooMany       Code = 1101
	UnpackFieldTwice    Code = 1102
	UnpackFieldNotFound Code = 1103
	UnpackNotStructLike Code = 1104

	// Type inference / unification, 1200-1299.
	TypeMismatch        Code = 1200
	TypeOccursCheck     Code = 1201
	TypeAnnotationsNeed Code = 1202
	TypeIllegalCast     Code = 1203
	TypeVarargMismatch  Code = 1204

	// Constant evaluation, 1300-1399.
	ConstOverflow     Code = 1300
	ConstDivideByZero Code = 1301
	ConstOutOfRange   Code = 1302
	ConstNotConstant  Code = 1303

	// Entry point validation, 1400-1409.
	EntryPointMissing Code = 1400
	EntryPointBadType Code = 1401

	// Compile-time VM, 1500-1599 (internal-error class; these indicate
	// mistyped bytecode and should never surface in a well-formed build).
	VMStackOverflow  Code = 1500
	VMBadOperandType Code = 1501
	VMUnsupportedFFI Code = 1502
	VMFrameOverflow  Code = 1503
)

// ID returns the stable, grep-friendly identifier used in golden output and
// editor integrations (e.g. "E1200"). It is distinct from String, which may
// grow a human title in the future.
func (c Code) ID() string {
	return c.String()
}

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "E0000"
	case ExternalSyntax:
		return "E0500"
	case NameNotFound:
		return "E1000"
	case NamePrivate:
		return "E1001"
	case NameSuperOnRoot:
		return "E1002"
	case NameDuplicate:
		return "E1003"
	case NameNotAModule:
		return "E1004"
	case NameNotAType:
		return "E1005"
	case NameCycle:
		return "E1010"
	case UnpackNotTuple:
		return "E1100"
	case UnpackTooMany:
		return "E1101"
	case UnpackFieldTwice:
		return "E1102"
	case UnpackFieldNotFound:
		return "E1103"
	case UnpackNotStructLike:
		return "E1104"
	case TypeMismatch:
		return "E1200"
	case TypeOccursCheck:
		return "E1201"
	case TypeAnnotationsNeed:
		return "E1202"
	case TypeIllegalCast:
		return "E1203"
	case TypeVarargMismatch:
		return "E1204"
	case ConstOverflow:
		return "E1300"
	case ConstDivideByZero:
		return "E1301"
	case ConstOutOfRange:
		return "E1302"
	case ConstNotConstant:
		return "E1303"
	case EntryPointMissing:
		return "E1400"
	case EntryPointBadType:
		return "E1401"
	case VMStackOverflow:
		return "E1500"
	case VMBadOperandType:
		return "E1501"
	case VMUnsupportedFFI:
		return "E1502"
	case VMFrameOverflow:
		return "E1503"
	default:
		return fmt.Sprintf("E%04d", uint16(c))
	}
}

// IsCompilerBug reports whether a code represents a VM/internal invariant
// violation rather than a diagnosable user error (runtime panics in the
// bytecode VM are assumed impossible for well-typed bytecode).
func (c Code) IsCompilerBug() bool {
	return c >= VMStackOverflow && c <= VMFrameOverflow
}
