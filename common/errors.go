package common

import "errors"

var (
	ErrorInvalidValue = errors.New("invalid value")

	// shape and data problems of a single series
	ErrShapeMismatch    = errors.New("input sequences differ in length")
	ErrInsufficientData = errors.New("fewer than 2 valid points")
	ErrDegenerateRange  = errors.New("data range narrower than one grid step")
	ErrInvalidStep      = errors.New("grid step must be a positive finite number")
	ErrUnsorted         = errors.New("sequence is not in ascending order")

	// exchange file reading
	ErrUnknownEncoding = errors.New("unknown character encoding")
	ErrMalformedFile   = errors.New("malformed exchange file")
)
