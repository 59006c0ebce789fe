// Package value defines Value, the tagged union that flows between blocks
// and is stored as node configuration, together with its tagged JSON form
// and conversions to and from plain Go data.
package value
