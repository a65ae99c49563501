package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcallister/backdesk/pkg/docstore"
	"github.com/jcallister/backdesk/pkg/domain"
	"github.com/jcallister/backdesk/pkg/sqlstore"
)

// Cross-backend equivalence: the relational adapter (native stages) and
// the document adapter (engine stages) must produce identical pages for
// the same dataset and spec.
func TestEngine_CrossBackendEquivalence(t *testing.T) {
	type row struct {
		email, first, last, role, status string
	}
	dataset := []row{
		{"zoe@example.com", "Zoe", "Adams", "admin", "active"},
		{"adam@example.com", "Adam", "Brown", "user", "active"},
		{"mary@example.com", "Mary", "Chen", "admin", "inactive"},
		{"checkley@example.com", "Check", "Ley", "user", "active"},
		{"paycheck@example.com", "Pay", "Check", "user", "inactive"},
	}

	db, err := sqlstore.Open(filepath.Join(t.TempDir(), "equiv.db"))
	require.NoError(t, err)
	defer db.Close()
	users := sqlstore.NewUserStore(db)

	docs := docstore.NewStore()

	ctx := context.Background()
	for _, r := range dataset {
		_, err := users.Create(ctx, sqlstore.UserInput{
			Email: r.email, FirstName: r.first, LastName: r.last, Role: r.role, Status: r.status,
		})
		require.NoError(t, err)
		_, err = docs.Insert("users", domain.Record{
			"email": r.email, "first_name": r.first, "last_name": r.last, "role": r.role, "status": r.status,
		})
		require.NoError(t, err)
	}

	capable := users.Adapter()
	scan := docs.Adapter("users", "email", "first_name", "last_name")

	specs := []domain.QuerySpec{
		{SortField: "email"},
		{Search: "check", SortField: "email"},
		{Search: "CHECK", SortField: "email", SortDirection: domain.SortDesc},
		{Filters: map[string]interface{}{"role": "admin"}, SortField: "email"},
		{Filters: map[string]interface{}{"role": "user", "status": "active"}, SortField: "email"},
		{Search: "example", SortField: "status"},
		{Search: "check", Filters: map[string]interface{}{"status": "inactive"}, SortField: "email", PerPage: 1},
		{SortField: "email", Page: 2, PerPage: 2},
		{SortField: "email", Page: 9, PerPage: 2},
	}

	for i, spec := range specs {
		spec.Normalize()
		t.Run(fmt.Sprintf("spec_%d", i), func(t *testing.T) {
			fromSQL, err := Execute(ctx, spec, capable)
			require.NoError(t, err)
			fromDocs, err := Execute(ctx, spec, scan)
			require.NoError(t, err)

			assert.Equal(t, fromSQL.Total, fromDocs.Total)
			assert.Equal(t, fromSQL.Pages, fromDocs.Pages)
			assert.Equal(t, fromSQL.HasNext, fromDocs.HasNext)
			assert.Equal(t, fromSQL.HasPrev, fromDocs.HasPrev)

			sqlEmails := make([]string, len(fromSQL.Items))
			for j, rec := range fromSQL.Items {
				sqlEmails[j] = rec.FieldString("email")
			}
			docEmails := make([]string, len(fromDocs.Items))
			for j, rec := range fromDocs.Items {
				docEmails[j] = rec.FieldString("email")
			}
			assert.Equal(t, sqlEmails, docEmails)
		})
	}
}
