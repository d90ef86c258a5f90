package repository

// Column selection for the resumes table. Statements are built from the
// probed column set directly, so a partially-migrated table degrades to the
// best available column set instead of failing the request.

// resumeJSONColumns are the JSON-typed resumes columns in schema order.
var resumeJSONColumns = []string{
	"summary",
	"experience",
	"education",
	"skills",
	"internship",
	"job_experience",
	"projects",
}

// resumeMinimumColumns must all be writable for an update to proceed at
// all; a table below this set is unusable for updates.
var resumeMinimumColumns = []string{"summary", "experience", "education", "skills"}

// insertColumns returns the optional resumes columns to include in an
// INSERT, in schema order. user_id is handled by the caller.
func insertColumns(available ColumnSet) []string {
	cols := make([]string, 0, len(resumeJSONColumns)+1)
	if available.Has("title") {
		cols = append(cols, "title")
	}
	for _, c := range resumeJSONColumns {
		if available.Has(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// updateColumns returns the resumes columns an UPDATE may set. The second
// return is false when the minimum writable set is not fully present,
// which callers surface as a schema error.
func updateColumns(available ColumnSet) ([]string, bool) {
	for _, c := range resumeMinimumColumns {
		if !available.Has(c) {
			return nil, false
		}
	}
	return insertColumns(available), true
}

// latestOrder returns the ORDER BY expression for "most recent resume":
// updated_at, then created_at, then primary key, first available wins.
func latestOrder(available ColumnSet) string {
	switch {
	case available.Has("updated_at"):
		return "updated_at DESC"
	case available.Has("created_at"):
		return "created_at DESC"
	default:
		return "id DESC"
	}
}
