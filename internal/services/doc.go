// Package services defines the error taxonomy shared by the download
// pipeline and its HTTP boundary, plus context helpers for request
// correlation.
//
// Errors are tagged with sentinel markers (ErrValidation, ErrStorage,
// ErrExtraction, ErrUnexpected) via Wrap so the boundary can classify a
// failure without knowing which component produced it. HTTPStatus and
// ErrorCode translate that classification into the wire contract.
package services
