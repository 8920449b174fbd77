package checklist

import "errors"

var (
	ErrSessionNotFound  = errors.New("checklist session not found")
	ErrInvalidHighlight = errors.New("highlight has no target")
)
