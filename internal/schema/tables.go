package schema

// Property maps listing records onto the "Property" table. The key is
// assigned by the database on insert and no column is NOT NULL.
var Property = Table{
	Name: "Property",
	Key:  "id",
	Columns: []Column{
		{Name: "address", Type: Text},
		{Name: "price", Type: Real},
		{Name: "size", Type: Real},
		{Name: "description", Type: Text},
	},
}
