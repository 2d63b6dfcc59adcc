// Package model defines the ordered entry collection rendered into a
// calculation document, along with its file-operation table.
//
// A model is read from YAML, JSON or HCL. In YAML, entries are a list of
// single-key maps naming the entry kind:
//
//	entries:
//	  - section: {left: "1.1", right: "Loads"}
//	  - equation:
//	      statement: M = w * L**2 / 8
//	      ref: "[1] midspan moment"
//	      decimals: "2,2"
//	  - blank
//	files:
//	  "1": {option: read, path: loads.csv, args: [d, ",", "1"]}
//
// In HCL, entries are labeled blocks:
//
//	entry "equation" {
//	  statement = "M = w * L**2 / 8"
//	  ref       = "[1] midspan moment"
//	}
package model
