package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/dataspec/internal/catalogue"
	"github.com/roach88/dataspec/internal/queryir"
)

// createTestStore creates a new store in a temporary directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestQuery creates a cohort query with a single Age rule.
func createTestQuery(dataSpecificationID string, age int) catalogue.SpecificationQuery {
	return catalogue.SpecificationQuery{
		DataSpecificationID: dataSpecificationID,
		Type:                catalogue.QueryCohort,
		Condition: queryir.NewCondition(queryir.And,
			queryir.NewExpression("Age", queryir.OpGreaterOrEqual, age),
		),
	}
}
