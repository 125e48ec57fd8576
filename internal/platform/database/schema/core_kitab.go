package schema

// CoreKitabTable represents the 'core.kitab' table
type CoreKitabTable struct {
	Table       string
	KitabID     string
	Book        string
	Ordinal     string
	NameAr      string
	NameTh      string
	NameEn      string
	HadithCount string
	CreatedAt   string
	UpdatedAt   string
}

// CoreKitab is the schema definition for core.kitab
var CoreKitab = CoreKitabTable{
	Table:       "core.kitab",
	KitabID:     "kitabid",
	Book:        "book",
	Ordinal:     "ordinal",
	NameAr:      "name_ar",
	NameTh:      "name_th",
	NameEn:      "name_en",
	HadithCount: "hadithcount",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreKitabTable) Columns() []string {
	return []string{
		t.KitabID, t.Book, t.Ordinal, t.NameAr, t.NameTh, t.NameEn,
		t.HadithCount, t.CreatedAt, t.UpdatedAt,
	}
}
