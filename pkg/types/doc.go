// Package types defines the canonical document model for the Casebook
// system: test-case documents, the per-instance profile configuration,
// and the error types shared by the codec and the engines built on it.
//
// The XML wire representation lives in internal/xmlcodec; these types are
// the single in-memory shape all business logic operates on. Legacy wire
// variants are normalized into this model on read and never carried past
// the codec boundary.
package types
