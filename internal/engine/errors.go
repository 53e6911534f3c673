package engine

import "fmt"

// ValidationError reports an input rejected before any packing started.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// UnplaceableError is fatal for the whole run: a piece whose both
// orientations exceed the sheet in at least one dimension.
type UnplaceableError struct {
	PieceID     string
	PieceName   string
	PieceWidth  float64
	PieceHeight float64
	SheetWidth  float64
	SheetHeight float64
}

func (e *UnplaceableError) Error() string {
	return fmt.Sprintf("piece %s (%q, %gx%g mm) does not fit the %gx%g mm sheet in any orientation",
		e.PieceID, e.PieceName, e.PieceWidth, e.PieceHeight, e.SheetWidth, e.SheetHeight)
}

// unplaceable builds the error for the first pending piece that cannot fit
// an empty sheet. Every strategy calls this only after a fresh sheet
// accepted nothing, so at least one pending piece must be oversized; the
// first pending piece is the fallback offender either way.
func unplaceable(pending []Rectangle, tpl SheetTemplate) *UnplaceableError {
	offender := pending[0]
	for _, r := range pending {
		if !r.FitsIn(tpl.Width, tpl.Height) {
			offender = r
			break
		}
	}
	return &UnplaceableError{
		PieceID:     offender.ID,
		PieceName:   offender.Name,
		PieceWidth:  offender.Width,
		PieceHeight: offender.Height,
		SheetWidth:  tpl.Width,
		SheetHeight: tpl.Height,
	}
}
