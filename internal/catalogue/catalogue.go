// Package catalogue defines the metadata catalogue entities a data
// specification is assembled from: schemas, classes and elements.
//
// The types mirror the JSON the metadata API returns. IsSelected is only a
// snapshot of selection; the live state is kept by package selection in a
// side table keyed by entity id.
package catalogue

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DataClass is a class of a data model. A schema is itself represented as
// a DataClass with no parent.
type DataClass struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Description   string `json:"description,omitempty"`
	ModelID       string `json:"modelId,omitempty"`
	ParentClassID string `json:"parentDataClassId,omitempty"`
	IsSelected    bool   `json:"isSelected"`
}

// DataElement is a single data element, as returned by element search.
type DataElement struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	DataClassID string `json:"dataClassId,omitempty"`
	ModelID     string `json:"modelId,omitempty"`
	IsSelected  bool   `json:"isSelected"`
}

// DataClassWithElements is a class and the elements it owns.
type DataClassWithElements struct {
	DataClass    DataClass     `json:"dataClass"`
	DataElements []DataElement `json:"dataElements"`
}

// DataSchema is a schema with its classes, two levels deep.
type DataSchema struct {
	Schema      DataClass               `json:"schema"`
	DataClasses []DataClassWithElements `json:"dataClasses"`
}

// QueryType distinguishes the two queries a data specification carries.
type QueryType string

const (
	// QueryCohort selects the people a request covers.
	QueryCohort QueryType = "cohort"
	// QueryData restricts the data returned for that cohort.
	QueryData QueryType = "data"
)

// Valid reports whether t is cohort or data.
func (t QueryType) Valid() bool {
	return t == QueryCohort || t == QueryData
}

// LoadSchema reads a schema tree from JSON.
//
// Elements without a dataClassId inherit the id of the class that lists
// them. Every schema, class and element must have a non-empty id that is
// unique within the tree.
func LoadSchema(r io.Reader) (DataSchema, error) {
	var schema DataSchema
	if err := json.NewDecoder(r).Decode(&schema); err != nil {
		return DataSchema{}, fmt.Errorf("decode schema: %w", err)
	}

	seen := map[string]string{}
	claim := func(id, kind string) error {
		if id == "" {
			return fmt.Errorf("%s with empty id", kind)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("duplicate id %q (%s and %s)", id, prev, kind)
		}
		seen[id] = kind
		return nil
	}

	if err := claim(schema.Schema.ID, "schema"); err != nil {
		return DataSchema{}, err
	}
	for i := range schema.DataClasses {
		class := &schema.DataClasses[i]
		if err := claim(class.DataClass.ID, "class"); err != nil {
			return DataSchema{}, err
		}
		for j := range class.DataElements {
			elem := &class.DataElements[j]
			if err := claim(elem.ID, "element"); err != nil {
				return DataSchema{}, err
			}
			if elem.DataClassID == "" {
				elem.DataClassID = class.DataClass.ID
			}
		}
	}
	return schema, nil
}

// LoadSchemaFile reads a schema tree from a JSON file.
func LoadSchemaFile(path string) (DataSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return DataSchema{}, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()

	schema, err := LoadSchema(f)
	if err != nil {
		return DataSchema{}, fmt.Errorf("%s: %w", path, err)
	}
	return schema, nil
}
