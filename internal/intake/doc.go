// Package intake implements the membership form pipeline: decoding the two
// accepted request encodings into one canonical submission map, validating and
// normalizing the submitted fields into a typed MemberRecord, and serializing
// exported row sets to CSV.
//
// The package is pure: nothing in it touches the network, the database or the
// clock, which is what makes the validation rules independently testable. The
// normalizer is the single authority for defaulting: every optional field
// leaves Validate as an empty string or a nil year, never as an absent value.
package intake
