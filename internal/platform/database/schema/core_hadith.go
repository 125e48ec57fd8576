package schema

// CoreHadithTable represents the 'core.hadith' table
type CoreHadithTable struct {
	Table            string
	HadithID         string
	Book             string
	HadithNo         string
	KitabID          string
	KitabOrdinal     string
	KitabAr          string
	KitabTh          string
	KitabEn          string
	BabAr            string
	BabTh            string
	ContentAr        string
	ContentTh        string
	Grade            string
	TranslationNotes string
	Status           string
	CreatedAt        string
	UpdatedAt        string
}

// CoreHadith is the schema definition for core.hadith
var CoreHadith = CoreHadithTable{
	Table:            "core.hadith",
	HadithID:         "hadithid",
	Book:             "book",
	HadithNo:         "hadithno",
	KitabID:          "kitabid",
	KitabOrdinal:     "kitabordinal",
	KitabAr:          "kitab_ar",
	KitabTh:          "kitab_th",
	KitabEn:          "kitab_en",
	BabAr:            "bab_ar",
	BabTh:            "bab_th",
	ContentAr:        "content_ar",
	ContentTh:        "content_th",
	Grade:            "grade",
	TranslationNotes: "translationnotes",
	Status:           "status",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

func (t CoreHadithTable) Columns() []string {
	return []string{
		t.HadithID, t.Book, t.HadithNo, t.KitabID, t.KitabOrdinal,
		t.KitabAr, t.KitabTh, t.KitabEn, t.BabAr, t.BabTh,
		t.ContentAr, t.ContentTh, t.Grade, t.TranslationNotes, t.Status,
		t.CreatedAt, t.UpdatedAt,
	}
}
