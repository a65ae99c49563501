package indexes

import "fmt"

// Report collects every structural problem found in a definition list.
// Errors block provisioning; warnings do not.
type Report struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// IsValid reports whether the definitions can be provisioned as-is.
func (r Report) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate statically checks a definition list. It is a pure function:
// the input is never mutated and all problems are returned as data, so a
// caller can display every issue at once instead of failing on the first.
// Positions in the messages refer to the definition and field order of
// the input.
func Validate(defs []Definition) Report {
	report := Report{Errors: []string{}, Warnings: []string{}}

	for i, def := range defs {
		if def.CollectionGroup == "" {
			report.Errors = append(report.Errors,
				fmt.Sprintf("index %d: missing 'collectionGroup'", i))
		}

		if len(def.Fields) == 0 {
			report.Errors = append(report.Errors,
				fmt.Sprintf("index %d: missing or empty 'fields'", i))
			continue
		}

		for j, field := range def.Fields {
			if field.FieldPath == "" {
				report.Errors = append(report.Errors,
					fmt.Sprintf("index %d, field %d: missing 'fieldPath'", i, j))
			}

			hasOrder := field.Order != ""
			hasArrayConfig := field.ArrayConfig != ""

			if !hasOrder && !hasArrayConfig {
				report.Errors = append(report.Errors,
					fmt.Sprintf("index %d, field %d: must have either 'order' or 'arrayConfig'", i, j))
			}
			if hasOrder && hasArrayConfig {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("index %d, field %d: has both 'order' and 'arrayConfig'; 'arrayConfig' will be used", i, j))
			}
			if hasOrder && field.Order != OrderAscending && field.Order != OrderDescending {
				report.Errors = append(report.Errors,
					fmt.Sprintf("index %d, field %d: 'order' must be 'ASCENDING' or 'DESCENDING'", i, j))
			}
			if hasArrayConfig && field.ArrayConfig != ArrayContains {
				report.Errors = append(report.Errors,
					fmt.Sprintf("index %d, field %d: 'arrayConfig' must be 'CONTAINS'", i, j))
			}
		}
	}

	return report
}
