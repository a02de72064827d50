// Package schema checks that an agent config document has the shape the
// toggle engine expects before anything is written back. Schemas are embedded
// JSON Schema (draft 2020-12) documents and only constrain the fields
// letsyolo reads or writes; everything else is left open.
package schema
