// Package token scans documents into classified lines and owns the
// scalar quoting rules shared by the parser and the encoder.
package token
